package handler

import (
	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	in := ports.RegisterInput{
		Role:             req.Role,
		Email:            req.Email,
		Password:         req.Password,
		WhatsApp:         req.WhatsApp,
		Name:             req.Name,
		Department:       req.Department,
		Address:          req.Address,
		ServiceRadiusKm:  req.ServiceRadiusKm,
		CapacityKgPerDay: req.CapacityKgPerDay,
	}
	if req.Location != nil {
		in.Location = &ports.LocationInput{Coordinates: req.Location.Coordinates}
	}
	if req.WorkingHours != nil {
		in.WorkingHours = &ports.WorkingHoursInput{Start: req.WorkingHours.Start, End: req.WorkingHours.End}
	}
	return in
}

func toCreateItemInput(req createItemRequest, actor domain.Principal) ports.CreateItemInput {
	return ports.CreateItemInput{
		ItemName:    req.ItemName,
		Description: req.Description,
		Category:    req.Category,
		WeightKg:    req.WeightKg,
		Actor:       actor,
	}
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Role:      string(u.Role),
		Email:     u.Email,
		WhatsApp:  u.WhatsApp,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
	switch u.Role {
	case domain.RoleAdmin:
		if a := u.Admin; a != nil {
			resp.Name = a.Name
			resp.Department = string(a.Department)
		}
	case domain.RoleVendor:
		if v := u.Vendor; v != nil {
			radius, capacity := v.ServiceRadiusKm, v.CapacityKgPerDay
			resp.Address = v.Address
			resp.Location = &geoPointResponse{Type: v.Location.Type, Coordinates: v.Location.Coordinates}
			resp.ServiceRadiusKm = &radius
			resp.CapacityKgPerDay = &capacity
			resp.WorkingHours = &workingHoursResponse{Start: v.WorkingHours.Start, End: v.WorkingHours.End}
		}
	}
	return resp
}

func toHistoryResponse(entries []domain.StatusHistoryEntry) []historyEntryResponse {
	out := make([]historyEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = historyEntryResponse{
			Status:    string(e.Status),
			UpdatedBy: e.UpdatedBy,
			Timestamp: e.Timestamp.UTC(),
		}
	}
	return out
}

func toItemResponse(it *domain.EwasteItem) itemResponse {
	return itemResponse{
		ID:            it.ID,
		ItemName:      it.ItemName,
		Description:   it.Description,
		Category:      string(it.Category),
		WeightKg:      it.WeightKg,
		LookupCode:    it.LookupCode,
		ReportedBy:    reporterResponse{ID: it.ReportedBy},
		Status:        string(it.Status),
		StatusHistory: toHistoryResponse(it.StatusHistory),
		CreatedAt:     it.CreatedAt.UTC(),
		UpdatedAt:     it.UpdatedAt.UTC(),
	}
}

// toItemDetailResponse inlines the reporter's public fields when known.
func toItemDetailResponse(d *ports.ItemDetail) itemResponse {
	resp := toItemResponse(d.Item)
	if r := d.Reporter; r != nil {
		resp.ReportedBy = reporterResponse{ID: r.ID, Name: r.Name, Email: r.Email}
	}
	return resp
}

func toListResponse(r *ports.ListItemsResult) listItemsResponse {
	data := make([]itemResponse, len(r.Items))
	for i, it := range r.Items {
		data[i] = toItemResponse(it)
	}
	return listItemsResponse{
		Data: data,
		Pagination: paginationMeta{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
