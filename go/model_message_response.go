package greeterserver

type MessageResponse struct {
	Message string `json:"message"`
}
