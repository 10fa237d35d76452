package repository

import (
	"context"
	"time"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type panelTypeItem struct {
	ID           string             `dynamodbav:"id"`
	Label        string             `dynamodbav:"label"`
	Price        float64            `dynamodbav:"price"`
	VendorPrices map[string]float64 `dynamodbav:"vendor_prices,omitempty"`
}

type vendorItem struct {
	ID   string `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

type marginThresholdsItem struct {
	ProductMarginMin float64 `dynamodbav:"product_margin_min"`
	InstallMarginMin float64 `dynamodbav:"install_margin_min"`
	ProjectMarginMin float64 `dynamodbav:"project_margin_min"`
}

type catalogItem struct {
	TeamID           string               `dynamodbav:"team_id"`
	PanelTypes       []panelTypeItem      `dynamodbav:"panel_types"`
	Vendors          []vendorItem         `dynamodbav:"vendors"`
	ProjectTypes     []string             `dynamodbav:"project_types"`
	MarginThresholds marginThresholdsItem `dynamodbav:"margin_thresholds"`
	PreparedBy       map[string]string    `dynamodbav:"prepared_by"`
	UpdatedAt        string               `dynamodbav:"updated_at"`
}

// CatalogDynamoRepository persists one TeamCatalog per team.
//
// Table requirements:
//   - PK: team_id (string)
type CatalogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb *dynamodb.Client, tableName string) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CatalogDynamoRepository) GetByTeamID(ctx context.Context, teamID string) (entities.TeamCatalog, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"team_id": &types.AttributeValueMemberS{Value: teamID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.TeamCatalog{}, err
	}
	if len(out.Item) == 0 {
		return entities.TeamCatalog{}, nil
	}

	var it catalogItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.TeamCatalog{}, err
	}
	return fromCatalogItem(it), nil
}

// Save replaces the whole catalog of the team.
func (r *CatalogDynamoRepository) Save(ctx context.Context, c entities.TeamCatalog) (entities.TeamCatalog, error) {
	av, err := attributevalue.MarshalMap(toCatalogItem(c))
	if err != nil {
		return entities.TeamCatalog{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.TeamCatalog{}, err
	}
	return c, nil
}

func toCatalogItem(c entities.TeamCatalog) catalogItem {
	it := catalogItem{
		TeamID:       c.TeamID,
		PanelTypes:   make([]panelTypeItem, 0, len(c.PanelTypes)),
		Vendors:      make([]vendorItem, 0, len(c.Vendors)),
		ProjectTypes: c.ProjectTypes,
		MarginThresholds: marginThresholdsItem{
			ProductMarginMin: c.MarginThresholds.ProductMarginMin,
			InstallMarginMin: c.MarginThresholds.InstallMarginMin,
			ProjectMarginMin: c.MarginThresholds.ProjectMarginMin,
		},
		PreparedBy: c.PreparedBy,
		UpdatedAt:  c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for _, pt := range c.PanelTypes {
		it.PanelTypes = append(it.PanelTypes, panelTypeItem(pt))
	}
	for _, v := range c.Vendors {
		it.Vendors = append(it.Vendors, vendorItem(v))
	}
	if it.ProjectTypes == nil {
		it.ProjectTypes = []string{}
	}
	if it.PreparedBy == nil {
		it.PreparedBy = map[string]string{}
	}
	return it
}

func fromCatalogItem(it catalogItem) entities.TeamCatalog {
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	c := entities.TeamCatalog{
		TeamID:       it.TeamID,
		PanelTypes:   make([]pricing.PanelType, 0, len(it.PanelTypes)),
		Vendors:      make([]pricing.Vendor, 0, len(it.Vendors)),
		ProjectTypes: it.ProjectTypes,
		MarginThresholds: pricing.MarginThresholds{
			ProductMarginMin: it.MarginThresholds.ProductMarginMin,
			InstallMarginMin: it.MarginThresholds.InstallMarginMin,
			ProjectMarginMin: it.MarginThresholds.ProjectMarginMin,
		},
		PreparedBy: it.PreparedBy,
		UpdatedAt:  updatedAt,
	}
	for _, pt := range it.PanelTypes {
		c.PanelTypes = append(c.PanelTypes, pricing.PanelType(pt))
	}
	for _, v := range it.Vendors {
		c.Vendors = append(c.Vendors, pricing.Vendor(v))
	}
	if c.ProjectTypes == nil {
		c.ProjectTypes = []string{}
	}
	if c.PreparedBy == nil {
		c.PreparedBy = map[string]string{}
	}
	return c
}
