package greeterserver

// SayHelloRequest is the say-hello body. Fields are left untyped so wire
// coercion can report each field individually.
type SayHelloRequest struct {
	FirstName any `json:"first_name"`

	LastName any `json:"last_name"`

	Age any `json:"age"`
}
