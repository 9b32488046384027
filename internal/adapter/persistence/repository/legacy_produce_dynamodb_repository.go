package repository

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type legacyProduceItem struct {
	ID                  string   `dynamodbav:"id"`
	ProduceType         string   `dynamodbav:"produce_type"`
	Variety             string   `dynamodbav:"variety,omitempty"`
	Quantity            *float64 `dynamodbav:"quantity,omitempty"`
	Unit                string   `dynamodbav:"unit,omitempty"`
	Condition           string   `dynamodbav:"condition,omitempty"`
	CurrentMarketPrice  *float64 `dynamodbav:"current_market_price,omitempty"`
	ExpectedPeakPrice   *float64 `dynamodbav:"expected_peak_price,omitempty"`
	MinimumSellingPrice *float64 `dynamodbav:"minimum_selling_price,omitempty"`
	RoomID              string   `dynamodbav:"room_id"`
	OwnerID             string   `dynamodbav:"owner_id"`
	StorageDate         string   `dynamodbav:"storage_date,omitempty"`
	CreatedAt           string   `dynamodbav:"created_at"`
	Status              string   `dynamodbav:"status"`
	Sold                bool     `dynamodbav:"sold"`
	Notes               string   `dynamodbav:"notes,omitempty"`
	ClaimToken          string   `dynamodbav:"claim_token,omitempty"`
	Version             int64    `dynamodbav:"version"`
}

// LegacyProduceDynamoRepository reads and flags legacy produce in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Items written before the version attribute existed are treated as version 0.
type LegacyProduceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	timeout   time.Duration
}

var _ interfaces.ILegacyProduceRepository = (*LegacyProduceDynamoRepository)(nil)

func NewLegacyProduceDynamoRepository(ddb DynamoAPI, tables Tables, timeout time.Duration) *LegacyProduceDynamoRepository {
	return &LegacyProduceDynamoRepository{
		ddb:       ddb,
		tableName: tables.LegacyProduce,
		timeout:   timeout,
	}
}

func (r *LegacyProduceDynamoRepository) ListEligible(ctx context.Context, filter entities.EligibilityFilter) ([]entities.LegacyProduce, error) {
	if len(filter.Statuses) == 0 {
		return nil, nil
	}
	expr, values, names := eligibilityExpression(filter)

	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ConsistentRead:            aws.Bool(true),
	})

	var out []entities.LegacyProduce
	for p.HasMorePages() {
		pctx, cancel := withTimeout(ctx, r.timeout)
		page, err := p.NextPage(pctx)
		cancel()
		if err != nil {
			log.Printf("[migration][repository] scan legacy produce failed table=%s err=%v", r.tableName, err)
			return nil, err
		}
		var items []legacyProduceItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromLegacyProduceItem(it))
		}
	}
	return out, nil
}

// GetByID returns a zero LegacyProduce when the record does not exist.
func (r *LegacyProduceDynamoRepository) GetByID(ctx context.Context, id string) (entities.LegacyProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.LegacyProduce{}, err
	}
	if len(out.Item) == 0 {
		return entities.LegacyProduce{}, nil
	}

	var it legacyProduceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.LegacyProduce{}, err
	}
	return fromLegacyProduceItem(it), nil
}

func (r *LegacyProduceDynamoRepository) Claim(ctx context.Context, p entities.LegacyProduce, token string) (entities.LegacyProduce, error) {
	cond, condValues := versionCondition(p.Version)
	values := map[string]types.AttributeValue{
		":token":  &types.AttributeValueMemberS{Value: token},
		":status": &types.AttributeValueMemberS{Value: string(p.Status)},
		":zero":   &types.AttributeValueMemberN{Value: "0"},
		":one":    &types.AttributeValueMemberN{Value: "1"},
	}
	for k, v := range condValues {
		values[k] = v
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey(p.ID),
		UpdateExpression:          aws.String("SET #claim_token = :token, #version = if_not_exists(#version, :zero) + :one"),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :status AND " + cond),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#status":      "status",
			"#claim_token": "claim_token",
			"#version":     "version",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.LegacyProduce{}, interfaces.ErrClaimLost
		}
		return entities.LegacyProduce{}, err
	}

	var it legacyProduceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.LegacyProduce{}, err
	}
	return fromLegacyProduceItem(it), nil
}

func (r *LegacyProduceDynamoRepository) Release(ctx context.Context, id, token string) error {
	return r.updateClaimed(ctx, id, token,
		"REMOVE #claim_token SET #version = #version + :one",
		map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		map[string]string{"#version": "version"})
}

func (r *LegacyProduceDynamoRepository) MarkMigrated(ctx context.Context, id, token, notes string) error {
	return r.updateClaimed(ctx, id, token,
		"REMOVE #claim_token SET #status = :removed, #notes = :notes, #version = #version + :one",
		map[string]types.AttributeValue{
			":removed": &types.AttributeValueMemberS{Value: string(entities.LegacyStatusRemoved)},
			":notes":   &types.AttributeValueMemberS{Value: notes},
			":one":     &types.AttributeValueMemberN{Value: "1"},
		},
		map[string]string{"#status": "status", "#notes": "notes", "#version": "version"})
}

// updateClaimed applies expr only while the record still carries token.
func (r *LegacyProduceDynamoRepository) updateClaimed(ctx context.Context, id, token, expr string, values map[string]types.AttributeValue, names map[string]string) error {
	values[":token"] = &types.AttributeValueMemberS{Value: token}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey(id),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("#claim_token = :token"),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#claim_token": "claim_token"}),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return interfaces.ErrClaimLost
		}
		return err
	}
	return nil
}

// versionCondition matches records that still carry version v.
func versionCondition(v int64) (string, map[string]types.AttributeValue) {
	values := map[string]types.AttributeValue{
		":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)},
	}
	if v == 0 {
		return "(attribute_not_exists(#version) OR #version = :expected)", values
	}
	return "#version = :expected", values
}

func eligibilityExpression(filter entities.EligibilityFilter) (string, map[string]types.AttributeValue, map[string]string) {
	values := map[string]types.AttributeValue{}
	names := map[string]string{"#status": "status"}

	placeholders := make([]string, 0, len(filter.Statuses))
	for i, s := range filter.Statuses {
		key := fmt.Sprintf(":s%d", i)
		placeholders = append(placeholders, key)
		values[key] = &types.AttributeValueMemberS{Value: string(s)}
	}
	expr := "#status IN (" + strings.Join(placeholders, ", ") + ")"

	if !filter.IncludeSold {
		expr += " AND (attribute_not_exists(#sold) OR #sold = :false)"
		values[":false"] = &types.AttributeValueMemberBOOL{Value: false}
		names["#sold"] = "sold"
	}
	return expr, values, names
}

func toLegacyProduceItem(p entities.LegacyProduce) legacyProduceItem {
	it := legacyProduceItem{
		ID:                  p.ID,
		ProduceType:         p.ProduceType,
		Variety:             p.Variety,
		Quantity:            p.Quantity,
		Unit:                p.Unit,
		Condition:           p.Condition,
		CurrentMarketPrice:  p.CurrentMarketPrice,
		ExpectedPeakPrice:   p.ExpectedPeakPrice,
		MinimumSellingPrice: p.MinimumSellingPrice,
		RoomID:              p.RoomID,
		OwnerID:             p.OwnerID,
		CreatedAt:           formatTime(p.CreatedAt),
		Status:              string(p.Status),
		Sold:                p.Sold,
		Notes:               p.Notes,
		ClaimToken:          p.ClaimToken,
		Version:             p.Version,
	}
	if p.StorageDate != nil {
		it.StorageDate = formatTime(*p.StorageDate)
	}
	return it
}

func fromLegacyProduceItem(it legacyProduceItem) entities.LegacyProduce {
	p := entities.LegacyProduce{
		ID:                  it.ID,
		ProduceType:         it.ProduceType,
		Variety:             it.Variety,
		Quantity:            it.Quantity,
		Unit:                it.Unit,
		Condition:           it.Condition,
		CurrentMarketPrice:  it.CurrentMarketPrice,
		ExpectedPeakPrice:   it.ExpectedPeakPrice,
		MinimumSellingPrice: it.MinimumSellingPrice,
		RoomID:              it.RoomID,
		OwnerID:             it.OwnerID,
		CreatedAt:           parseTime(it.CreatedAt),
		Status:              entities.LegacyStatus(it.Status),
		Sold:                it.Sold,
		Notes:               it.Notes,
		ClaimToken:          it.ClaimToken,
		Version:             it.Version,
	}
	if it.StorageDate != "" {
		if t := parseTime(it.StorageDate); !t.IsZero() {
			p.StorageDate = &t
		}
	}
	return p
}
