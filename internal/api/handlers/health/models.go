package health

// Response HTTP response model
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
