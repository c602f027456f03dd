package project

import (
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	out := &dto.ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		CustomerID:   p.CustomerID,
		Customer:     usecase.ToCustomerResponse(p.Customer),
		Description:  p.Description,
		Street:       p.Street,
		PostalCode:   p.PostalCode,
		City:         p.City,
		Status:       string(p.Status),
		StartDate:    dto.DatePtr(p.StartDate),
		EndDate:      dto.DatePtr(p.EndDate),
		Installers:   p.Installers,
		Tasks:        make([]dto.TaskResponse, 0, len(p.Tasks)),
		Appointments: make([]dto.AppointmentResponse, 0, len(p.Appointments)),
		Documents:    toDocumentResponses(p.Documents),
		Folders:      make([]dto.FolderResponse, 0, len(p.Folders)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, t := range p.Tasks {
		out.Tasks = append(out.Tasks, *toTaskResponse(t))
	}
	for _, a := range p.Appointments {
		out.Appointments = append(out.Appointments, *toAppointmentResponse(a))
	}
	for _, f := range p.Folders {
		out.Folders = append(out.Folders, *toFolderResponse(f))
	}
	return out
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Status:    string(t.Status),
		Executor:  t.Executor,
		Color:     t.Color,
		Date:      dto.NewDate(t.Date),
	}
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Title:     a.Title,
		Date:      dto.NewDate(a.Date),
		Notes:     a.Notes,
	}
}

func toFolderResponse(f *entity.DocumentFolder) *dto.FolderResponse {
	return &dto.FolderResponse{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		Name:      f.Name,
		Documents: toDocumentResponses(f.Documents),
	}
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		FolderID:    d.FolderID,
		Filename:    d.Filename,
		Path:        d.Path,
		ContentType: d.ContentType,
	}
}

func toDocumentResponses(docs []*entity.Document) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, *toDocumentResponse(d))
	}
	return out
}
