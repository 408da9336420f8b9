package repository

import (
	"context"
	"errors"
	"fmt"

	"meety/cmd/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the slice of the DynamoDB client the repository uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

const (
	attrMeetingID = "meetingId"
	attrStatus    = "status"
	attrDate      = "date"
)

type DefaultMeetingRepository struct {
	client    DynamoAPI
	table     string
	indexName string
}

func NewMeetingRepository(client DynamoAPI, table, indexName string) *DefaultMeetingRepository {
	return &DefaultMeetingRepository{client: client, table: table, indexName: indexName}
}

func (r *DefaultMeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	item, err := attributevalue.MarshalMap(meeting)
	if err != nil {
		return fmt.Errorf("marshal meeting %s: %w", meeting.MeetingID, err)
	}

	cond := expression.AttributeNotExists(expression.Name(attrMeetingID))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return entity.ErrMeetingExists
	}
	return err
}

func (r *DefaultMeetingRepository) FindByID(ctx context.Context, id string) (*entity.Meeting, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            meetingKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var meeting entity.Meeting
	if err := attributevalue.UnmarshalMap(out.Item, &meeting); err != nil {
		return nil, fmt.Errorf("unmarshal meeting %s: %w", id, err)
	}
	return &meeting, nil
}

func (r *DefaultMeetingRepository) FindByStatus(ctx context.Context, status entity.Status) ([]*entity.Meeting, error) {
	key := expression.Key(attrStatus).Equal(expression.Value(status))
	return r.query(ctx, key)
}

func (r *DefaultMeetingRepository) FindByStatusAndDate(ctx context.Context, status entity.Status, date string) ([]*entity.Meeting, error) {
	key := expression.Key(attrStatus).Equal(expression.Value(status)).
		And(expression.Key(attrDate).Equal(expression.Value(date)))
	return r.query(ctx, key)
}

// FindByStatusBetween returns meetings whose date lies in [from, to], both ends
// included, compared as ISO date strings.
func (r *DefaultMeetingRepository) FindByStatusBetween(ctx context.Context, status entity.Status, from, to string) ([]*entity.Meeting, error) {
	key := expression.Key(attrStatus).Equal(expression.Value(status)).
		And(expression.Key(attrDate).Between(expression.Value(from), expression.Value(to)))
	return r.query(ctx, key)
}

func (r *DefaultMeetingRepository) UpdateStatus(ctx context.Context, id string, status entity.Status) (*entity.Meeting, error) {
	update := expression.Set(expression.Name(attrStatus), expression.Value(status))
	cond := expression.AttributeExists(expression.Name(attrMeetingID))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, err
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       meetingKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return nil, entity.ErrMeetingNotFound
	}
	if err != nil {
		return nil, err
	}

	var meeting entity.Meeting
	if err := attributevalue.UnmarshalMap(out.Attributes, &meeting); err != nil {
		return nil, fmt.Errorf("unmarshal meeting %s: %w", id, err)
	}
	return &meeting, nil
}

// query walks every page of the status index; order is whatever the index
// returns.
func (r *DefaultMeetingRepository) query(ctx context.Context, key expression.KeyConditionBuilder) ([]*entity.Meeting, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(key).Build()
	if err != nil {
		return nil, err
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	meetings := make([]*entity.Meeting, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		var batch []*entity.Meeting
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal meetings page: %w", err)
		}
		meetings = append(meetings, batch...)
	}
	return meetings, nil
}

func meetingKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrMeetingID: &types.AttributeValueMemberS{Value: id},
	}
}
