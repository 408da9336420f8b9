package repository

import (
	"context"
	"errors"
	"testing"

	"meety/cmd/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	pages      [][]map[string]types.AttributeValue
	queries    []*dynamodb.QueryInput
	puts       []*dynamodb.PutItemInput
	updates    []*dynamodb.UpdateItemInput
	getItem    map[string]types.AttributeValue
	updateErr  error
	putErr     error
	updateAttr map[string]types.AttributeValue
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.getItem}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateAttr}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	page := len(f.queries)
	f.queries = append(f.queries, in)
	out := &dynamodb.QueryOutput{Items: f.pages[page]}
	if page < len(f.pages)-1 {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"meetingId": &types.AttributeValueMemberS{Value: "cursor"},
		}
	}
	return out, nil
}

func item(t *testing.T, m entity.Meeting) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(m)
	require.NoError(t, err)
	return av
}

func TestQueryConcatenatesPages(t *testing.T) {
	fake := &fakeDynamo{pages: [][]map[string]types.AttributeValue{
		{item(t, entity.Meeting{MeetingID: "a", Status: entity.StatusPending}), item(t, entity.Meeting{MeetingID: "b", Status: entity.StatusPending})},
		{item(t, entity.Meeting{MeetingID: "c", Status: entity.StatusPending})},
	}}
	repo := NewMeetingRepository(fake, "Meetings", "StatusIndex")

	meetings, err := repo.FindByStatus(context.Background(), entity.StatusPending)
	require.NoError(t, err)

	ids := make([]string, len(meetings))
	for i, m := range meetings {
		ids[i] = m.MeetingID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	require.Len(t, fake.queries, 2)
	assert.Nil(t, fake.queries[0].ExclusiveStartKey)
	assert.NotNil(t, fake.queries[1].ExclusiveStartKey)
	assert.Equal(t, "StatusIndex", aws.ToString(fake.queries[0].IndexName))
}

func TestFindByStatusBetweenUsesRangeKey(t *testing.T) {
	fake := &fakeDynamo{pages: [][]map[string]types.AttributeValue{{}}}
	repo := NewMeetingRepository(fake, "Meetings", "StatusIndex")

	meetings, err := repo.FindByStatusBetween(context.Background(), entity.StatusApproved, "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Empty(t, meetings)

	in := fake.queries[0]
	assert.Contains(t, aws.ToString(in.KeyConditionExpression), "BETWEEN")
	values := make([]string, 0)
	for _, v := range in.ExpressionAttributeValues {
		values = append(values, v.(*types.AttributeValueMemberS).Value)
	}
	assert.ElementsMatch(t, []string{"approved", "2025-01-01", "2025-01-31"}, values)
}

func TestDecodesLegacyStringDuration(t *testing.T) {
	fake := &fakeDynamo{getItem: map[string]types.AttributeValue{
		"meetingId": &types.AttributeValueMemberS{Value: "m1"},
		"duration":  &types.AttributeValueMemberS{Value: "45"},
		"status":    &types.AttributeValueMemberS{Value: "approved"},
	}}
	repo := NewMeetingRepository(fake, "Meetings", "StatusIndex")

	m, err := repo.FindByID(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, entity.Minutes(45), m.Duration)
	assert.Equal(t, entity.StatusApproved, m.Status)
}

func TestFindByIDMissing(t *testing.T) {
	repo := NewMeetingRepository(&fakeDynamo{}, "Meetings", "StatusIndex")

	m, err := repo.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestUpdateStatusMapsConditionFailure(t *testing.T) {
	fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Message: aws.String("nope")}}
	repo := NewMeetingRepository(fake, "Meetings", "StatusIndex")

	_, err := repo.UpdateStatus(context.Background(), "missing", entity.StatusApproved)
	assert.ErrorIs(t, err, entity.ErrMeetingNotFound)
	assert.Contains(t, aws.ToString(fake.updates[0].ConditionExpression), "attribute_exists")
}

func TestUpdateStatusReturnsNewImage(t *testing.T) {
	fake := &fakeDynamo{updateAttr: item(t, entity.Meeting{MeetingID: "m1", Status: entity.StatusCancelled, Duration: 30})}
	repo := NewMeetingRepository(fake, "Meetings", "StatusIndex")

	m, err := repo.UpdateStatus(context.Background(), "m1", entity.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, m.Status)
	assert.Equal(t, types.ReturnValueAllNew, fake.updates[0].ReturnValues)
}

func TestCreateIsConditional(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewMeetingRepository(fake, "Meetings", "StatusIndex")

	require.NoError(t, repo.Create(context.Background(), &entity.Meeting{MeetingID: "m1", Duration: 30}))
	assert.Contains(t, aws.ToString(fake.puts[0].ConditionExpression), "attribute_not_exists")
	assert.Equal(t, &types.AttributeValueMemberN{Value: "30"}, fake.puts[0].Item["duration"])

	fake.putErr = &types.ConditionalCheckFailedException{}
	err := repo.Create(context.Background(), &entity.Meeting{MeetingID: "m1"})
	assert.True(t, errors.Is(err, entity.ErrMeetingExists))
}
