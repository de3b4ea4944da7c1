package dto

type GenerateRequest struct {
	Text   string `json:"text" validate:"required,min=1,max=50000"`
	Action string `json:"action" validate:"required,oneof=summarize fix_grammar expand title"`
}

type GenerateResponse struct {
	Result string `json:"result"`
	Action string `json:"action"`
}
