package models

import (
	"strings"
	"time"
)

// PatentRecord is the normalized patent entity produced by the ETL pipeline.
// The engine treats it as immutable input and never re-derives fields from
// raw vendor documents.
type PatentRecord struct {
	ApplicationNumber string     `bson:"applicationNumber" json:"applicationNumber"`
	Title             Title      `bson:"title" json:"title"`
	Applicant         Applicant  `bson:"applicant" json:"applicant"`
	Inventors         []Inventor `bson:"inventors" json:"inventors"`
	Abstract          string     `bson:"abstract" json:"abstract"`
	Claims            []string   `bson:"claims" json:"claims"`
	IPCCodes          []string   `bson:"ipcCodes" json:"ipcCodes"`
	CPCCodes          []string   `bson:"cpcCodes" json:"cpcCodes"`
	Status            string     `bson:"status" json:"status"`
	ApplicationDate   string     `bson:"applicationDate,omitempty" json:"applicationDate,omitempty"`
	RegistrationDate  string     `bson:"registrationDate,omitempty" json:"registrationDate,omitempty"`
	RawRef            string     `bson:"rawRef,omitempty" json:"rawRef,omitempty"`
}

// Title carries the bilingual invention title
type Title struct {
	Ko string `bson:"ko" json:"ko"`
	En string `bson:"en,omitempty" json:"en,omitempty"`
}

type Applicant struct {
	Name    string `bson:"name" json:"name"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type Inventor struct {
	Name    string `bson:"name" json:"name"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// WeightedKeyword is a search term with its LLM-assigned weight in [0,1].
type WeightedKeyword struct {
	Term   string
	Weight float64
}

// CandidateSource tags which retrieval path produced a candidate
type CandidateSource string

const (
	SourceLexical CandidateSource = "LEXICAL"
	SourceVector  CandidateSource = "VECTOR"
)

// Candidate is one entry of a merged retrieval result
type Candidate struct {
	Source CandidateSource
	AppNo  string
}

// Message is a single conversational turn inside a session document
type Message struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// SessionRecord is the persisted chat session document. ExpiresAt always
// equals UpdatedAt + TTL; every append slides both forward.
type SessionRecord struct {
	SessionID string    `bson:"session_id" json:"session_id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Messages  []Message `bson:"messages" json:"messages"`
}

// SessionSummary is the projection returned by session listings
type SessionSummary struct {
	SessionID string    `bson:"session_id" json:"session_id"`
	Title     string    `bson:"title" json:"title"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NormalizeApplicationNumber strips every non-digit character from an
// application number. It is total and idempotent: any input is accepted and
// the empty string means "no usable number".
func NormalizeApplicationNumber(appNo string) string {
	if appNo == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(appNo))
	for _, r := range appNo {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
