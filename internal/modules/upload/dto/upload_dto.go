package dto

type UploadQuery struct {
	Folder string `form:"folder" binding:"required"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}
