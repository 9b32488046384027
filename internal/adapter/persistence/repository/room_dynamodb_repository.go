package repository

import (
	"context"
	"log"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type roomItem struct {
	ID               string  `dynamodbav:"id"`
	Name             string  `dynamodbav:"name"`
	Capacity         float64 `dynamodbav:"capacity"`
	CurrentOccupancy float64 `dynamodbav:"current_occupancy"`
}

// RoomDynamoRepository reads rooms and maintains their occupancy.
//
// Table requirements:
//   - PK: id (string)
//
// Occupancy changes use ADD so concurrent writers never lose an increment.
type RoomDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	timeout   time.Duration
}

var _ interfaces.IRoomRepository = (*RoomDynamoRepository)(nil)

func NewRoomDynamoRepository(ddb DynamoAPI, tables Tables, timeout time.Duration) *RoomDynamoRepository {
	return &RoomDynamoRepository{
		ddb:       ddb,
		tableName: tables.Rooms,
		timeout:   timeout,
	}
}

func (r *RoomDynamoRepository) GetByID(ctx context.Context, id string) (entities.Room, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Room{}, err
	}
	if len(out.Item) == 0 {
		return entities.Room{}, nil
	}

	var it roomItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Room{}, err
	}
	return fromRoomItem(it), nil
}

func (r *RoomDynamoRepository) AddOccupancy(ctx context.Context, id string, delta float64) (entities.Room, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey(id),
		UpdateExpression:    aws.String("ADD #occupancy :delta"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: floatToString(delta)},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":        "id",
			"#occupancy": "current_occupancy",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Room{}, nil
		}
		log.Printf("[migration][repository] add occupancy failed room_id=%s delta=%g err=%v", id, delta, err)
		return entities.Room{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Room{}, nil
	}

	var it roomItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Room{}, err
	}
	return fromRoomItem(it), nil
}

func fromRoomItem(it roomItem) entities.Room {
	return entities.Room{
		ID:               it.ID,
		Name:             it.Name,
		Capacity:         it.Capacity,
		CurrentOccupancy: it.CurrentOccupancy,
	}
}
