package repository

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TableAdmin is the subset of the DynamoDB client EnsureTables needs.
type TableAdmin interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

type TableNames struct {
	Customers       string
	Technicians     string
	Jobs            string
	Quotes          string
	Invoices        string
	InvoicePayments string
	Routes          string
	Alerts          string
}

func NewTableNames(prefix string) TableNames {
	return TableNames{
		Customers:       prefix + "customers",
		Technicians:     prefix + "technicians",
		Jobs:            prefix + "jobs",
		Quotes:          prefix + "quotes",
		Invoices:        prefix + "invoices",
		InvoicePayments: prefix + "invoice_payments",
		Routes:          prefix + "routes",
		Alerts:          prefix + "alerts",
	}
}

// tableSpecs maps each table to the attribute of its GSI, if any.
func (n TableNames) tableSpecs() map[string]string {
	return map[string]string{
		n.Customers:       "",
		n.Technicians:     "",
		n.Jobs:            "customer_id",
		n.Quotes:          "customer_id",
		n.Invoices:        "customer_id",
		n.InvoicePayments: "invoice_id",
		n.Routes:          "",
		n.Alerts:          "customer_id",
	}
}

// EnsureTables creates missing tables on demand, which is what DynamoDB
// Local needs on first start. Existing tables are left untouched.
func EnsureTables(ctx context.Context, admin TableAdmin, names TableNames, logger *zap.Logger) error {
	for table, indexAttr := range names.tableSpecs() {
		_, err := admin.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		if err == nil {
			continue
		}
		var nf *types.ResourceNotFoundException
		if !errors.As(err, &nf) {
			return err
		}
		if _, err := admin.CreateTable(ctx, createTableInput(table, indexAttr)); err != nil {
			return err
		}
		logger.Info("dynamodb table created", zap.String("table", table))
	}
	return nil
}

func createTableInput(table, indexAttr string) *dynamodb.CreateTableInput {
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
	}
	if indexAttr == "" {
		return in
	}
	in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
		AttributeName: aws.String(indexAttr), AttributeType: types.ScalarAttributeTypeS,
	})
	in.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
		IndexName: aws.String(indexAttr + "-index"),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(indexAttr), KeyType: types.KeyTypeHash},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}
	return in
}
