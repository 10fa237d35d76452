package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const estimatesTeamIDIndex = "team_id-index"

// estimateItem stores the payload and the computed snapshot as JSON strings so
// the engine's document shape never leaks into the table schema.
type estimateItem struct {
	ID                 string  `dynamodbav:"id"`
	TeamID             string  `dynamodbav:"team_id"`
	Title              string  `dynamodbav:"title"`
	PayloadVersion     int     `dynamodbav:"payload_version"`
	Payload            string  `dynamodbav:"payload"`
	Computed           string  `dynamodbav:"computed,omitempty"`
	TotalContractPrice float64 `dynamodbav:"total_contract_price"`
	Status             string  `dynamodbav:"status"`
	CreatedAt          string  `dynamodbav:"created_at"`
	UpdatedAt          string  `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: team_id-index (PK: team_id)
type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client, tableName string) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	it, err := toEstimateItem(e)
	if err != nil {
		return entities.Estimate{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Estimate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it)
}

// ListByTeamID returns the team's estimates, most recently updated first.
func (r *EstimateDynamoRepository) ListByTeamID(ctx context.Context, teamID string) ([]entities.Estimate, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(estimatesTeamIDIndex),
		KeyConditionExpression: aws.String("team_id = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: teamID},
		},
	})

	items := make([]entities.Estimate, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it estimateItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			e, err := fromEstimateItem(it)
			if err != nil {
				return nil, err
			}
			items = append(items, e)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

func (r *EstimateDynamoRepository) UpdateDraft(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	it, err := toEstimateItem(e)
	if err != nil {
		return entities.Estimate{}, err
	}

	return r.update(ctx, e.ID, func(now string) (string, string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #title = :title, #payload = :payload, #payload_version = :payload_version, " +
			"#computed = :computed, #total = :total, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":title":           &types.AttributeValueMemberS{Value: it.Title},
			":payload":         &types.AttributeValueMemberS{Value: it.Payload},
			":payload_version": &types.AttributeValueMemberN{Value: strconv.Itoa(it.PayloadVersion)},
			":computed":        &types.AttributeValueMemberS{Value: it.Computed},
			":total":           &types.AttributeValueMemberN{Value: floatToString(it.TotalContractPrice)},
			":updated_at":      &types.AttributeValueMemberS{Value: now},
			":draft":           &types.AttributeValueMemberS{Value: string(entities.EstimateStatusDraft)},
		}
		names := map[string]string{
			"#title":           "title",
			"#payload":         "payload",
			"#payload_version": "payload_version",
			"#computed":        "computed",
			"#total":           "total_contract_price",
			"#updated_at":      "updated_at",
			"#status":          "status",
		}
		return expr, "#status = :draft", vals, names
	})
}

func (r *EstimateDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.EstimateStatus) (entities.Estimate, error) {
	return r.update(ctx, id, func(now string) (string, string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, "#status = :from", vals, names
	})
}

// update applies an UpdateItem guarded by the item existing plus the given
// condition. A failed condition yields an empty Estimate.
func (r *EstimateDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr, condition string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Estimate, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, condition, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(estimateCondition(condition)),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Estimate{}, nil
	}
	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it)
}

func estimateCondition(extra string) string {
	if extra == "" {
		return "attribute_exists(#id)"
	}
	return "attribute_exists(#id) AND " + extra
}

func toEstimateItem(e entities.Estimate) (estimateItem, error) {
	it := estimateItem{
		ID:                 e.ID,
		TeamID:             e.TeamID,
		Title:              e.Title,
		PayloadVersion:     e.PayloadVersion(),
		TotalContractPrice: e.TotalContractPrice,
		Status:             string(e.Status),
		CreatedAt:          e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:          e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if e.Payload != nil {
		raw, err := pricing.EncodePayload(e.Payload)
		if err != nil {
			return estimateItem{}, err
		}
		it.Payload = string(raw)
	}
	if e.Computed != nil {
		raw, err := json.Marshal(e.Computed)
		if err != nil {
			return estimateItem{}, err
		}
		it.Computed = string(raw)
	}
	return it, nil
}

func fromEstimateItem(it estimateItem) (entities.Estimate, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	e := entities.Estimate{
		ID:                 it.ID,
		TeamID:             it.TeamID,
		Title:              it.Title,
		TotalContractPrice: it.TotalContractPrice,
		Status:             entities.EstimateStatus(it.Status),
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}
	if it.Payload != "" {
		p, err := pricing.DecodePayload([]byte(it.Payload))
		if err != nil {
			return entities.Estimate{}, fmt.Errorf("estimate %s: %w", it.ID, err)
		}
		e.Payload = p
	}
	if it.Computed != "" {
		var c pricing.ComputedEstimate
		if err := json.Unmarshal([]byte(it.Computed), &c); err != nil {
			return entities.Estimate{}, fmt.Errorf("estimate %s computed: %w", it.ID, err)
		}
		e.Computed = &c
	}
	return e, nil
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
