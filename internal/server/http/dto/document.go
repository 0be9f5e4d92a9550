package dto

import "github.com/polkiloo/onboarding/internal/domain/model"

// DocumentsResponse lists the uploaded documents.
type DocumentsResponse struct {
	Documents []model.DocumentMeta `json:"documents"`
}
