// Package entity contains the core business objects of the project.
package entity

import "time"

// RequestStatus represents the review state of an inbound coaching request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDeclined RequestStatus = "declined"
)

// String returns the string representation of the RequestStatus.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid checks if the RequestStatus is a valid value.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestDeclined:
		return true
	default:
		return false
	}
}

// CoachingRequest is an inbound application for a one-on-one coaching
// session, submitted from the public site.
type CoachingRequest struct {
	ID                 string        `json:"id"`                 // Caller-generated identifier, unique within the collection.
	ApplicantName      string        `json:"applicantName"`      // Applicant display name.
	Instagram          string        `json:"instagram"`          // Applicant contact handle.
	SelectedDate       time.Time     `json:"selectedDate"`       // Requested session date.
	ProjectDescription string        `json:"projectDescription"` // What the applicant wants to work on.
	Status             RequestStatus `json:"status"`             // Review state, starts pending.
	SubmittedAt        time.Time     `json:"submittedAt"`        // When the form was submitted.
}

// CollabKind classifies an inbound collaboration request.
type CollabKind string

const (
	CollabBrand      CollabKind = "brand"
	CollabEvent      CollabKind = "event"
	CollabArtProject CollabKind = "art_project"
)

// String returns the string representation of the CollabKind.
func (k CollabKind) String() string {
	return string(k)
}

// IsValid checks if the CollabKind is a valid value.
func (k CollabKind) IsValid() bool {
	switch k {
	case CollabBrand, CollabEvent, CollabArtProject:
		return true
	default:
		return false
	}
}

// CollabRequest is an inbound collaboration proposal from the public site.
// Write-only: there is no further lifecycle after submission.
type CollabRequest struct {
	ID          string     `json:"id"`          // Caller-generated identifier, unique within the collection.
	Kind        CollabKind `json:"kind"`        // brand, event or art project.
	ContactName string     `json:"contactName"` // Contact person name.
	Email       string     `json:"email"`       // Contact email.
	Message     string     `json:"message"`     // Proposal text.
	SubmittedAt time.Time  `json:"submittedAt"` // When the form was submitted.
}
