package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type priceHistoryItem struct {
	Price      float64 `dynamodbav:"price"`
	RecordedAt string  `dynamodbav:"recorded_at"`
	Source     string  `dynamodbav:"source"`
}

type storedProduceItem struct {
	ID             string             `dynamodbav:"id"`
	LegacyID       string             `dynamodbav:"legacy_id"`
	ProduceType    string             `dynamodbav:"produce_type"`
	Variety        string             `dynamodbav:"variety,omitempty"`
	Quantity       float64            `dynamodbav:"quantity"`
	Unit           string             `dynamodbav:"unit"`
	Condition      string             `dynamodbav:"condition"`
	EstimatedValue float64            `dynamodbav:"estimated_value"`
	TargetPrice    float64            `dynamodbav:"target_price"`
	StockedAt      string             `dynamodbav:"stocked_at"`
	RoomID         string             `dynamodbav:"room_id"`
	OwnerID        string             `dynamodbav:"owner_id"`
	Status         string             `dynamodbav:"status"`
	ApprovedBy     string             `dynamodbav:"approved_by"`
	ApprovedAt     string             `dynamodbav:"approved_at"`
	PriceHistory   []priceHistoryItem `dynamodbav:"price_history,omitempty"`
	Provenance     string             `dynamodbav:"provenance"`
	CreatedAt      string             `dynamodbav:"created_at"`
}

// CanonicalProduceDynamoRepository persists stored produce in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type CanonicalProduceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	timeout   time.Duration
}

var _ interfaces.ICanonicalProduceRepository = (*CanonicalProduceDynamoRepository)(nil)

func NewCanonicalProduceDynamoRepository(ddb DynamoAPI, tables Tables, timeout time.Duration) *CanonicalProduceDynamoRepository {
	return &CanonicalProduceDynamoRepository{
		ddb:       ddb,
		tableName: tables.StoredProduce,
		timeout:   timeout,
	}
}

func (r *CanonicalProduceDynamoRepository) Create(ctx context.Context, p entities.CanonicalProduce) (entities.CanonicalProduce, error) {
	av, err := attributevalue.MarshalMap(toStoredProduceItem(p))
	if err != nil {
		return entities.CanonicalProduce{}, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.CanonicalProduce{}, fmt.Errorf("%w: id=%s", interfaces.ErrDuplicateProduce, p.ID)
		}
		log.Printf("[migration][repository] put stored produce failed id=%s err=%v", p.ID, err)
		return entities.CanonicalProduce{}, err
	}
	return p, nil
}

func (r *CanonicalProduceDynamoRepository) GetByID(ctx context.Context, id string) (entities.CanonicalProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CanonicalProduce{}, err
	}
	if len(out.Item) == 0 {
		return entities.CanonicalProduce{}, nil
	}

	var it storedProduceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CanonicalProduce{}, err
	}
	return fromStoredProduceItem(it), nil
}

func (r *CanonicalProduceDynamoRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey(id),
	})
	if err != nil {
		log.Printf("[migration][repository] delete stored produce failed id=%s err=%v", id, err)
	}
	return err
}

func toStoredProduceItem(p entities.CanonicalProduce) storedProduceItem {
	it := storedProduceItem{
		ID:             p.ID,
		LegacyID:       p.LegacyID,
		ProduceType:    string(p.ProduceType),
		Variety:        p.Variety,
		Quantity:       p.Quantity,
		Unit:           p.Unit,
		Condition:      string(p.Condition),
		EstimatedValue: p.EstimatedValue,
		TargetPrice:    p.TargetPrice,
		StockedAt:      formatTime(p.StockedAt),
		RoomID:         p.RoomID,
		OwnerID:        p.OwnerID,
		Status:         string(p.Status),
		ApprovedBy:     p.Approval.ApprovedBy,
		ApprovedAt:     formatTime(p.Approval.ApprovedAt),
		Provenance:     p.Provenance,
		CreatedAt:      formatTime(p.CreatedAt),
	}
	for _, h := range p.PriceHistory {
		it.PriceHistory = append(it.PriceHistory, priceHistoryItem{
			Price:      h.Price,
			RecordedAt: formatTime(h.RecordedAt),
			Source:     h.Source,
		})
	}
	return it
}

func fromStoredProduceItem(it storedProduceItem) entities.CanonicalProduce {
	p := entities.CanonicalProduce{
		ID:             it.ID,
		LegacyID:       it.LegacyID,
		ProduceType:    entities.ProduceType(it.ProduceType),
		Variety:        it.Variety,
		Quantity:       it.Quantity,
		Unit:           it.Unit,
		Condition:      entities.ProduceCondition(it.Condition),
		EstimatedValue: it.EstimatedValue,
		TargetPrice:    it.TargetPrice,
		StockedAt:      parseTime(it.StockedAt),
		RoomID:         it.RoomID,
		OwnerID:        it.OwnerID,
		Status:         entities.StoredProduceStatus(it.Status),
		Approval: entities.Approval{
			ApprovedBy: it.ApprovedBy,
			ApprovedAt: parseTime(it.ApprovedAt),
		},
		Provenance: it.Provenance,
		CreatedAt:  parseTime(it.CreatedAt),
	}
	for _, h := range it.PriceHistory {
		p.PriceHistory = append(p.PriceHistory, entities.PriceHistoryEntry{
			Price:      h.Price,
			RecordedAt: parseTime(h.RecordedAt),
			Source:     h.Source,
		})
	}
	return p
}
