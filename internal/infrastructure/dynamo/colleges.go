package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/pkg/id"
)

// CollegeRepo mirrors directory entries into the store so user records can
// hold a stable college reference.
type CollegeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCollegeRepo(client *dynamodb.Client, tableName string) *CollegeRepo {
	return &CollegeRepo{client: client, tableName: tableName}
}

func (r *CollegeRepo) GetByName(ctx context.Context, name string) (*domain.College, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("name-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "name"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: name}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("college %q: %w", name, domain.ErrNotFound)
	}
	var c domain.College
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert ensures a college row exists for the canonical name, refreshing the
// domain when the dataset changed. Idempotent by name.
func (r *CollegeRepo) Upsert(ctx context.Context, name, emailDomain string) (*domain.College, error) {
	existing, err := r.GetByName(ctx, name)
	if err == nil {
		if existing.Domain == emailDomain {
			return existing, nil
		}
		if err := r.update(ctx, existing.CollegeID, emailDomain); err != nil {
			return nil, err
		}
		existing.Domain = emailDomain
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.College{
		CollegeID: id.New(),
		Name:      name,
		Domain:    emailDomain,
		CreatedAt: now,
		UpdatedAt: now,
	}
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return nil, fmt.Errorf("marshal college: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CollegeRepo) update(ctx context.Context, collegeID, emailDomain string) error {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"domain":     emailDomain,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("college_id", collegeID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
