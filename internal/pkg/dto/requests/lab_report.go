package requests

type SubmitLabReport struct {
	Result string `json:"result" validate:"required,max=10000"`
	Notes  string `json:"notes" validate:"max=2000"`
}
