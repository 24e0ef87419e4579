package app

type VideoResponse struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

type DownloadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
