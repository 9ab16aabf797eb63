package models

import "time"

// NotificationKind classifies a notification emitted by a domain operation.
type NotificationKind string

// Notification kinds emitted by the classroom core.
const (
	NotificationUserRegistered    NotificationKind = "user.registered"
	NotificationUserLoggedIn      NotificationKind = "user.logged_in"
	NotificationMaterialAdded     NotificationKind = "material.added"
	NotificationMaterialImportant NotificationKind = "material.marked_important"
	NotificationMaterialRemoved   NotificationKind = "material.removed"
	NotificationEnrollmentCreated NotificationKind = "enrollment.created"
	NotificationAssignmentSubmit  NotificationKind = "assignment.submitted"
	NotificationAssignmentGraded  NotificationKind = "assignment.evaluated"
	NotificationReportGenerated   NotificationKind = "report.generated"
)

// Notification is the result value of an operation; rendering is left to the caller.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	Message    string           `json:"message"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func newNotification(kind NotificationKind, message string) Notification {
	return Notification{Kind: kind, Message: message, OccurredAt: time.Now().UTC()}
}

// String returns the notification message.
func (n Notification) String() string {
	return n.Message
}
