package repository

import (
	"context"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type ownerItem struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email,omitempty"`
}

// OwnerDynamoRepository resolves farmers by id.
type OwnerDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	timeout   time.Duration
}

var _ interfaces.IOwnerRepository = (*OwnerDynamoRepository)(nil)

func NewOwnerDynamoRepository(ddb DynamoAPI, tables Tables, timeout time.Duration) *OwnerDynamoRepository {
	return &OwnerDynamoRepository{
		ddb:       ddb,
		tableName: tables.Owners,
		timeout:   timeout,
	}
}

func (r *OwnerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Owner, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Owner{}, err
	}
	if len(out.Item) == 0 {
		return entities.Owner{}, nil
	}

	var it ownerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Owner{}, err
	}
	return entities.Owner{ID: it.ID, Name: it.Name, Email: it.Email}, nil
}
