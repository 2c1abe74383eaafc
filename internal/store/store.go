package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/errs"
	"github.com/SirSluginston/SirSluginston-Backend/internal/record"
)

type DDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// tableKey is the (ProjectKey, PageKey) primary key of the config table.
type tableKey struct {
	ProjectKey string `dynamodbav:"ProjectKey"`
	PageKey    string `dynamodbav:"PageKey"`
}

// Dynamo reads config records from one DynamoDB table. Records leave it
// decoded and in projectKey/pageKey casing.
type Dynamo struct {
	client DDBClient
	table  string
	log    *zap.Logger
}

func NewDynamo(client DDBClient, table string, log *zap.Logger) *Dynamo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dynamo{client: client, table: table, log: log}
}

// Get fetches one record by key. ok is false when the item does not exist.
func (d *Dynamo) Get(ctx context.Context, project, page string) (record.Record, bool, error) {
	key, err := attributevalue.MarshalMap(tableKey{ProjectKey: project, PageKey: page})
	if err != nil {
		return nil, false, fmt.Errorf("marshal key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       key,
	})
	if err != nil {
		return nil, false, d.fail("GetItem", err)
	}
	if out.Item == nil {
		return nil, false, nil
	}
	return record.Canonicalize(record.Decode(out.Item)), true, nil
}

// Scan reads the whole table, following LastEvaluatedKey until exhausted.
// A non-empty project adds a ProjectKey filter; DynamoDB still reads every
// item, it only drops the others before returning them.
func (d *Dynamo) Scan(ctx context.Context, project string) ([]record.Record, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(d.table)}
	if project != "" {
		expr, err := expression.NewBuilder().
			WithFilter(expression.Name(record.ProjectKeyAttr).Equal(expression.Value(project))).
			Build()
		if err != nil {
			return nil, fmt.Errorf("build scan filter: %w", err)
		}
		in.FilterExpression = expr.Filter()
		in.ExpressionAttributeNames = expr.Names()
		in.ExpressionAttributeValues = expr.Values()
	}

	var out []record.Record
	p := dynamodb.NewScanPaginator(d.client, in)
	pages := 0
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, d.fail("Scan", err)
		}
		pages++
		for _, it := range page.Items {
			out = append(out, record.Canonicalize(record.Decode(it)))
		}
	}

	d.log.Debug("scan complete",
		zap.String("table", d.table),
		zap.String("project", project),
		zap.Int("pages", pages),
		zap.Int("items", len(out)))
	return out, nil
}

// healthKey is never written; Ping only cares that GetItem succeeds.
var healthKey = tableKey{ProjectKey: "__health__", PageKey: "__health__"}

// Ping checks that the table is reachable and readable with the current
// credentials.
func (d *Dynamo) Ping(ctx context.Context) error {
	key, err := attributevalue.MarshalMap(healthKey)
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	_, err = d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(d.table),
		Key:                  key,
		ProjectionExpression: aws.String(record.ProjectKeyAttr),
	})
	if err != nil {
		return d.fail("GetItem", err)
	}
	return nil
}

// Table is the table name this store reads.
func (d *Dynamo) Table() string { return d.table }

func (d *Dynamo) fail(op string, err error) error {
	serr := errs.NewStoreError(op, d.table, err)
	fields := []zap.Field{zap.String("op", op), zap.String("table", d.table), zap.Error(err)}
	var se *errs.StoreError
	if errors.As(serr, &se) && se.Code() != "" {
		fields = append(fields, zap.String("code", se.Code()))
	}
	d.log.Error("dynamodb request failed", fields...)
	return serr
}
