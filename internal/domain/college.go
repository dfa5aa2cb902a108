package domain

import "time"

// College mirrors a directory entry into the identity store the first time a
// login references it. Name is the canonical CSV spelling; Domain is
// lower-cased with no leading "@". An empty Domain means open enrollment.
type College struct {
	CollegeID string    `json:"id" dynamodbav:"college_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Domain    string    `json:"domain" dynamodbav:"domain"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}
