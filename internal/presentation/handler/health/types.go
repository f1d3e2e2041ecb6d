package health

// healthResponse reports service liveness
type healthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"1h3m"`
}
