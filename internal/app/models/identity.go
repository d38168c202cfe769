package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Identity is a principal resolved to its domain profile. ProfileID is empty
// for Admin, which has no profile document.
type Identity struct {
	Principal  Principal
	ProfileID  primitive.ObjectID
	Name       string
	Department string
	IsActive   bool
}

func (i Identity) Role() string {
	return i.Principal.Role
}

func (i Identity) HasProfile() bool {
	return !i.ProfileID.IsZero()
}
