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

// UserRepo is the identity store: one record per email, carrying the pending
// OTP state and the verified flag.
type UserRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepo(client *dynamodb.Client, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("email-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: email}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("user by email: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertByEmail creates or replaces the login record for u.Email. The write
// is a single PutItem, so concurrent issuances for the same email resolve to
// the last writer's OTP and expiry as one unit — never a mix of two calls.
// UserID, Role and CreatedAt of an existing record are preserved.
func (r *UserRepo) UpsertByEmail(ctx context.Context, u *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	existing, err := r.GetByEmail(ctx, u.Email)
	switch {
	case err == nil:
		u.UserID = existing.UserID
		u.Role = existing.Role
		u.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrNotFound):
		u.UserID = id.New()
		u.CreatedAt = now
	default:
		return nil, err
	}
	u.UpdatedAt = now

	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return nil, err
	}
	return u, nil
}

// ClearOTP marks the user verified and removes the one-time code, but only if
// the stored code still equals expectedOTP. The condition closes the race
// with a concurrent re-issuance: a code superseded mid-verification fails the
// check instead of clearing the newer one. Returns domain.ErrConflict when
// the condition fails.
func (r *UserRepo) ClearOTP(ctx context.Context, userID, expectedOTP string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("user_id", userID),
		UpdateExpression:    aws.String("SET #v = :t, #u = :now REMOVE #o, #e"),
		ConditionExpression: aws.String("#o = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#v": "verified",
			"#u": "updated_at",
			"#o": "otp",
			"#e": "otp_expiry",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":        &types.AttributeValueMemberBOOL{Value: true},
			":now":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
			":expected": &types.AttributeValueMemberS{Value: expectedOTP},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("otp superseded: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// Update applies a partial update to a user record.
func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("user_id", userID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
