package handler

import (
	"github.com/hirepipe/ats/internal/core/domain"
	"github.com/hirepipe/ats/internal/core/ports"
)

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required,max=256"`
	Role     string `json:"role"     validate:"required,oneof=recruiter manager"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Jobs ---

type createJobRequest struct {
	Title        string `json:"title"        validate:"required,notblank"`
	Description  string `json:"description"  validate:"required,notblank"`
	Requirements string `json:"requirements" validate:"required,notblank"`
}

// --- Candidates ---

type createCandidateRequest struct {
	JobID     int64   `json:"jobId"     validate:"required,gt=0"`
	Name      string  `json:"name"      validate:"required,notblank"`
	Email     string  `json:"email"     validate:"required,email"`
	Phone     string  `json:"phone"     validate:"required,notblank"`
	ResumeURL string  `json:"resumeUrl" validate:"required,url"`
	Stage     string  `json:"stage"     validate:"omitempty,stage"`
	Notes     *string `json:"notes"`
}

type updateStageRequest struct {
	Stage string `json:"stage" validate:"required,stage"`
}

// --- Request → Service input ---

func toCandidateInput(req createCandidateRequest, recruiterID int64) ports.CreateCandidateInput {
	in := ports.CreateCandidateInput{
		JobID:       req.JobID,
		RecruiterID: recruiterID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ResumeURL:   req.ResumeURL,
		Stage:       domain.Stage(req.Stage),
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}
	return in
}
