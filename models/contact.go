package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is the topic a visitor picks on the contact form.
type Service string

const (
	ServiceNetworkInfrastructure Service = "Network Infrastructure"
	ServiceWirelessSolutions     Service = "Wireless Solutions"
	ServiceSecuritySystems       Service = "Security Systems"
	ServiceCloudServices         Service = "Cloud Services"
	ServiceTechnicalSupport      Service = "Technical Support"
	ServicePartnership           Service = "Partnership"
	ServiceOther                 Service = "Other"
)

// Services lists every accepted Service value in form order.
var Services = []Service{
	ServiceNetworkInfrastructure,
	ServiceWirelessSolutions,
	ServiceSecuritySystems,
	ServiceCloudServices,
	ServiceTechnicalSupport,
	ServicePartnership,
	ServiceOther,
}

func (s Service) Valid() bool {
	for _, v := range Services {
		if v == s {
			return true
		}
	}
	return false
}

// ContactStatus tracks how far the sales team got with a submission.
type ContactStatus string

const (
	StatusNew        ContactStatus = "new"
	StatusReplied    ContactStatus = "replied"
	StatusInProgress ContactStatus = "in_progress"
	StatusClosed     ContactStatus = "closed"
)

var ContactStatuses = []ContactStatus{StatusNew, StatusReplied, StatusInProgress, StatusClosed}

func (s ContactStatus) Valid() bool {
	switch s {
	case StatusNew, StatusReplied, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// DefaultContactSource is stored when the submitting form does not say where it lives.
const DefaultContactSource = "website"

// Contact is a customer submission from the public contact form.
type Contact struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Company    string             `bson:"company,omitempty" json:"company,omitempty"`
	Service    Service            `bson:"service" json:"service"`
	Subject    string             `bson:"subject" json:"subject"`
	Message    string             `bson:"message" json:"message"`
	Status     ContactStatus      `bson:"status" json:"status"`
	Priority   Priority           `bson:"priority" json:"priority"`
	Source     string             `bson:"source" json:"source"`
	IsRead     bool               `bson:"isRead" json:"isRead"`
	Timestamps `bson:",inline"`
}

// ContactStats backs the admin inbox header.
type ContactStats struct {
	Total      int64                   `json:"total"`
	Unread     int64                   `json:"unread"`
	ByStatus   map[ContactStatus]int64 `json:"byStatus"`
	ByService  map[Service]int64       `json:"byService"`
	ByPriority map[Priority]int64      `json:"byPriority"`
}
