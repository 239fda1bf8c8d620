package handler

import "time"

type createItemRequest struct {
	ItemName    string   `json:"itemName"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listItemsQuery struct {
	Status     string `query:"status"`
	Category   string `query:"category"`
	ReportedBy string `query:"reportedBy"`
	Page       int    `query:"page"  validate:"omitempty,min=1"`
	Limit      int    `query:"limit" validate:"omitempty,min=1"`
}

type reporterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type historyEntryResponse struct {
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updatedBy"`
	Timestamp time.Time `json:"timestamp"`
}

type itemResponse struct {
	ID            string                 `json:"id"`
	ItemName      string                 `json:"itemName"`
	Description   string                 `json:"description,omitempty"`
	Category      string                 `json:"category"`
	WeightKg      *float64               `json:"weightKg,omitempty"`
	LookupCode    string                 `json:"lookupCode"`
	ReportedBy    reporterResponse       `json:"reportedBy"`
	Status        string                 `json:"status"`
	StatusHistory []historyEntryResponse `json:"statusHistory"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type createItemResponse struct {
	Message     string       `json:"message"`
	Item        itemResponse `json:"item"`
	LookupCode  string       `json:"lookupCode"`
	QRCodeImage string       `json:"qrCodeImage"`
}

type updateStatusResponse struct {
	Message string       `json:"message"`
	Item    itemResponse `json:"item"`
}

type historyResponse struct {
	ItemID        string                 `json:"itemId"`
	Status        string                 `json:"status"`
	StatusHistory []historyEntryResponse `json:"statusHistory"`
}

type paginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listItemsResponse struct {
	Data       []itemResponse `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}
