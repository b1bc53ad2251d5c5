package dto

type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateDocumentRequest struct {
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

type UpdateDocumentRequest struct {
	Content  Optional[string]                 `json:"content"`
	Metadata Optional[map[string]interface{}] `json:"metadata"`
}

type QueryDocumentsRequest struct {
	Query string `json:"query" validate:"required"`
	// TopK of zero selects the configured default.
	TopK int `json:"top_k" validate:"gte=0"`
}
