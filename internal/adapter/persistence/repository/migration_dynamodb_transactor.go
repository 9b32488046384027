package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Positions of the writes inside the transaction, matching CancellationReasons.
const (
	txPutProduce = iota
	txAddOccupancy
	txFlagLegacy
)

// MigrationDynamoTransactor commits a record migration with TransactWriteItems.
type MigrationDynamoTransactor struct {
	ddb     DynamoAPI
	tables  Tables
	rooms   *RoomDynamoRepository
	timeout time.Duration
}

var _ interfaces.IMigrationTransactor = (*MigrationDynamoTransactor)(nil)

func NewMigrationDynamoTransactor(ddb DynamoAPI, tables Tables, timeout time.Duration) *MigrationDynamoTransactor {
	return &MigrationDynamoTransactor{
		ddb:     ddb,
		tables:  tables,
		rooms:   NewRoomDynamoRepository(ddb, tables, timeout),
		timeout: timeout,
	}
}

func (t *MigrationDynamoTransactor) CommitMigration(ctx context.Context, c entities.MigrationCommit) (entities.Room, error) {
	input, err := t.buildTransaction(c)
	if err != nil {
		return entities.Room{}, err
	}

	tctx, cancel := withTimeout(ctx, t.timeout)
	_, err = t.ddb.TransactWriteItems(tctx, input)
	cancel()
	if err != nil {
		err = mapCancellation(err, c)
		log.Printf("[migration][repository] transact write failed legacy_id=%s err=%v", c.Legacy.ID, err)
		return entities.Room{}, err
	}

	// The writes are committed at this point; a failed read only costs the
	// capacity check.
	room, err := t.rooms.GetByID(ctx, c.Produce.RoomID)
	if err != nil {
		log.Printf("[migration][repository] read room after commit failed room_id=%s legacy_id=%s err=%v", c.Produce.RoomID, c.Legacy.ID, err)
		return entities.Room{}, nil
	}
	return room, nil
}

func (t *MigrationDynamoTransactor) buildTransaction(c entities.MigrationCommit) (*dynamodb.TransactWriteItemsInput, error) {
	produce, err := attributevalue.MarshalMap(toStoredProduceItem(c.Produce))
	if err != nil {
		return nil, err
	}

	cond, condValues := versionCondition(c.Legacy.Version)
	legacyValues := map[string]types.AttributeValue{
		":status":  &types.AttributeValueMemberS{Value: string(c.Legacy.Status)},
		":removed": &types.AttributeValueMemberS{Value: string(entities.LegacyStatusRemoved)},
		":notes":   &types.AttributeValueMemberS{Value: c.Notes},
		":zero":    &types.AttributeValueMemberN{Value: "0"},
		":one":     &types.AttributeValueMemberN{Value: "1"},
	}
	for k, v := range condValues {
		legacyValues[k] = v
	}

	items := make([]types.TransactWriteItem, 3)
	items[txPutProduce] = types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(t.tables.StoredProduce),
			Item:                produce,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		},
	}
	items[txAddOccupancy] = types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(t.tables.Rooms),
			Key:                 stringKey(c.Produce.RoomID),
			UpdateExpression:    aws.String("ADD #occupancy :delta"),
			ConditionExpression: aws.String("attribute_exists(#id)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":delta": &types.AttributeValueMemberN{Value: floatToString(c.Produce.Quantity)},
			},
			ExpressionAttributeNames: map[string]string{
				"#id":        "id",
				"#occupancy": "current_occupancy",
			},
		},
	}
	items[txFlagLegacy] = types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(t.tables.LegacyProduce),
			Key:                       stringKey(c.Legacy.ID),
			UpdateExpression:          aws.String("REMOVE #claim_token SET #status = :removed, #notes = :notes, #version = if_not_exists(#version, :zero) + :one"),
			ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :status AND " + cond),
			ExpressionAttributeValues: legacyValues,
			ExpressionAttributeNames: map[string]string{
				"#id":          "id",
				"#status":      "status",
				"#notes":       "notes",
				"#claim_token": "claim_token",
				"#version":     "version",
			},
		},
	}

	return &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(c.Produce.ID),
	}, nil
}

// mapCancellation turns a conditional cancellation into the matching domain error.
func mapCancellation(err error, c entities.MigrationCommit) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return err
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) != "ConditionalCheckFailed" {
			continue
		}
		switch i {
		case txPutProduce:
			return fmt.Errorf("%w: id=%s", interfaces.ErrDuplicateProduce, c.Produce.ID)
		case txAddOccupancy:
			return fmt.Errorf("%w: room_id=%s", interfaces.ErrRoomMissing, c.Produce.RoomID)
		case txFlagLegacy:
			return interfaces.ErrClaimLost
		}
	}
	return err
}
