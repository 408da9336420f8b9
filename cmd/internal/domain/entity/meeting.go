package entity

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
	StatusConfirmed Status = "confirmed"
)

const DefaultTitle = "Meeting"

var statuses = []Status{StatusPending, StatusApproved, StatusCancelled, StatusConfirmed}

func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown meeting status %q", s)
}

type Meeting struct {
	MeetingID    string  `json:"meetingId" dynamodbav:"meetingId" gorm:"primaryKey"`
	AttendeeName string  `json:"attendeeName" dynamodbav:"attendeeName" gorm:"not null"`
	Email        string  `json:"email" dynamodbav:"email" gorm:"not null"`
	Date         string  `json:"date" dynamodbav:"date" gorm:"not null;index:idx_status_date,priority:2"`
	StartTime    string  `json:"startTime" dynamodbav:"startTime" gorm:"not null"`
	EndTime      string  `json:"endTime" dynamodbav:"endTime" gorm:"not null"`
	Duration     Minutes `json:"duration" dynamodbav:"duration" gorm:"not null"`
	Title        string  `json:"title" dynamodbav:"title,omitempty"`
	Status       Status  `json:"status" dynamodbav:"status" gorm:"not null;index:idx_status_date,priority:1"`
	IsConflict   bool    `json:"isConflict" dynamodbav:"isConflict"`
	CreatedAt    string  `json:"createdAt" dynamodbav:"createdAt,omitempty"`
}

// Minutes is a meeting length. Older records stored it as a string, so
// decoding accepts both attribute kinds.
type Minutes int

func (m *Minutes) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		n, err := strconv.Atoi(v.Value)
		if err != nil {
			return err
		}
		*m = Minutes(n)
	case *types.AttributeValueMemberS:
		n, err := strconv.Atoi(v.Value)
		if err != nil {
			return fmt.Errorf("duration %q is not a number: %w", v.Value, err)
		}
		*m = Minutes(n)
	case *types.AttributeValueMemberNULL:
		*m = 0
	default:
		return fmt.Errorf("unsupported duration attribute %T", av)
	}
	return nil
}

func (m Minutes) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: strconv.Itoa(int(m))}, nil
}

var (
	_ attributevalue.Marshaler   = Minutes(0)
	_ attributevalue.Unmarshaler = (*Minutes)(nil)
)
