package model

import "github.com/google/uuid"

// ========== Response Envelope ==========

// Envelope is the JSON shape every endpoint returns:
// { value: bool, data?: any, message?: string }
type Envelope struct {
	Value   bool        `json:"value"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK builds a success envelope
func OK(data interface{}) Envelope {
	return Envelope{Value: true, Data: data}
}

// OKMessage builds a success envelope with a message and no data
func OKMessage(message string) Envelope {
	return Envelope{Value: true, Message: message}
}

// Fail builds a failure envelope
func Fail(message string) Envelope {
	return Envelope{Value: false, Message: message}
}

// ========== Auth DTOs ==========

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginResponse struct {
	Token  string         `json:"token"`
	Doctor DoctorResponse `json:"doctor"`
}

// ========== Device DTOs ==========

type RegisterDeviceRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=android ios web"`
}

// ========== Notification DTOs ==========

type NotificationListRequest struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

type NotificationListResponse struct {
	Notifications []AppNotification `json:"notifications"`
	Total         int64             `json:"total"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// ========== Patient DTOs ==========

type CreatePatientRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Hospital string `json:"hospital" binding:"max=255"`
}

// ========== Post DTOs ==========

type CreatePostRequest struct {
	Content string     `json:"content" binding:"required"`
	GroupID *uuid.UUID `json:"group_id"`
}

// ========== Group DTOs ==========

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
}

type InviteDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
}

// ========== Consultation DTOs ==========

type CreateConsultationRequest struct {
	PatientID uuid.UUID   `json:"patient_id" binding:"required"`
	DoctorIDs []uuid.UUID `json:"doctor_ids" binding:"required,min=1"`
	Note      string      `json:"note"`
}

// ========== Syndicate Card DTOs ==========

type SyndicateDecisionRequest struct {
	Decision SyndicateCardStatus `json:"decision" binding:"required,oneof=approved rejected"`
}

// ========== Export DTOs ==========

type ExportQueuedResponse struct {
	JobID string `json:"job_id"`
}
