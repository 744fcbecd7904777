// Package model defines the documents stored by the API: users, categories and blogs.
//
// Every document is identified by a 12-byte ObjectID, rendered as 24 lowercase
// hex characters. Both storage backends share these types; the bson tags are used
// by the mongo backend and ignored by sqlite.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// IDLength is the length of the hex form of an identifier.
const IDLength = 24

// IsValidID reports whether s is a well-formed identifier: exactly 24 lowercase
// hex characters. It never touches the store.
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ParseID validates s and converts it to an ObjectID.
// The boolean is false for anything IsValidID rejects.
func ParseID(s string) (primitive.ObjectID, bool) {
	if !IsValidID(s) {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
