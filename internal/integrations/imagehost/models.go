package imagehost

// UploadResult загруженное изображение
type UploadResult struct {
	URL       string
	DeleteURL string
	ThumbURL  string
}

// uploadResponse ответ ImgBB
type uploadResponse struct {
	Success bool       `json:"success"`
	Status  int        `json:"status"`
	Data    uploadData `json:"data"`
	Error   *apiError  `json:"error,omitempty"`
}

type uploadData struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	DisplayURL string    `json:"display_url"`
	DeleteURL  string    `json:"delete_url"`
	Thumb      thumbData `json:"thumb"`
}

type thumbData struct {
	URL string `json:"url"`
}

// apiError модель ошибки ImgBB
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
