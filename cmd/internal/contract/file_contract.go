package contract

const MaxFileSizeBytes = 30 * 1024 * 1024

type FileResponse struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

type FileURLResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
