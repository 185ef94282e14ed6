package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/debt-ledger/internal/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConnection bundles a connected client with the ledger database
type MongoConnection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// ConnectMongo connects and pings the primary before returning
func ConnectMongo(ctx context.Context, uri, database string) (*MongoConnection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoConnection{Client: client, Database: client.Database(database)}, nil
}

func (m *MongoConnection) Close(ctx context.Context) error {
	if m.Client != nil {
		return m.Client.Disconnect(ctx)
	}
	return nil
}

type debtorDocument struct {
	ID                    string                `bson:"_id"`
	Name                  string                `bson:"name"`
	Principal             primitive.Decimal128  `bson:"principal"`
	InterestRate          primitive.Decimal128  `bson:"interest_rate"`
	InterestType          string                `bson:"interest_type"`
	PeriodMonths          int                   `bson:"period_months"`
	Interest              primitive.Decimal128  `bson:"interest"`
	Total                 primitive.Decimal128  `bson:"total"`
	DueDate               string                `bson:"due_date"`
	Status                string                `bson:"status"`
	CollateralDescription string                `bson:"collateral_description"`
	CollateralValue       *primitive.Decimal128 `bson:"collateral_value"`
	Notes                 string                `bson:"notes"`
	CreatedAt             time.Time             `bson:"created_at"`
	UpdatedAt             time.Time             `bson:"updated_at"`
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore keeps one document per debtor, keyed by the debtor id
func NewMongoStore(coll *mongo.Collection) Store {
	return &mongoStore{coll: coll}
}

func (r *mongoStore) List(ctx context.Context) ([]domain.Debtor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	debtors := make([]domain.Debtor, 0)
	for cur.Next(ctx) {
		var doc debtorDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		debtor, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		debtors = append(debtors, debtor)
	}

	return debtors, cur.Err()
}

func (r *mongoStore) Create(ctx context.Context, debtor *domain.Debtor) error {
	doc, err := toDocument(*debtor, time.Now().UTC())
	if err != nil {
		return err
	}

	_, err = r.coll.InsertOne(ctx, doc)
	return err
}

func (r *mongoStore) Update(ctx context.Context, id string, patch domain.DebtorPatch) error {
	set, err := buildSet(patch)
	if err != nil || set == nil {
		return err
	}
	set = append(set, bson.E{Key: "updated_at", Value: time.Now().UTC()})

	// a missing id matches nothing, which is the expected no-op
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: set}})
	return err
}

func (r *mongoStore) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoStore) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func buildSet(patch domain.DebtorPatch) (bson.D, error) {
	cols := patchColumns(patch)
	if len(cols) == 0 {
		return nil, nil
	}

	set := make(bson.D, 0, len(cols))
	for _, c := range cols {
		v, err := bsonValue(c.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		set = append(set, bson.E{Key: c.name, Value: v})
	}
	return set, nil
}

func bsonValue(v any) (any, error) {
	switch v := v.(type) {
	case decimal.Decimal:
		return toDecimal128(v)
	case decimal.NullDecimal:
		return toNullDecimal128(v)
	case domain.Date:
		return v.String(), nil
	}
	return v, nil
}

func toDocument(d domain.Debtor, now time.Time) (debtorDocument, error) {
	doc := debtorDocument{
		ID:                    d.ID,
		Name:                  d.Name,
		InterestType:          string(d.InterestType),
		PeriodMonths:          d.PeriodMonths,
		DueDate:               d.DueDate.String(),
		Status:                string(d.Status),
		CollateralDescription: d.CollateralDescription,
		Notes:                 d.Notes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	var err error
	if doc.Principal, err = toDecimal128(d.Principal); err != nil {
		return doc, err
	}
	if doc.InterestRate, err = toDecimal128(d.InterestRate); err != nil {
		return doc, err
	}
	if doc.Interest, err = toDecimal128(d.Interest); err != nil {
		return doc, err
	}
	if doc.Total, err = toDecimal128(d.Total); err != nil {
		return doc, err
	}
	if doc.CollateralValue, err = toNullDecimal128(d.CollateralValue); err != nil {
		return doc, err
	}

	return doc, nil
}

func fromDocument(doc debtorDocument) (domain.Debtor, error) {
	d := domain.Debtor{ID: doc.ID}
	d.Name = doc.Name
	d.InterestType = domain.InterestType(doc.InterestType)
	d.PeriodMonths = doc.PeriodMonths
	d.Status = domain.Status(doc.Status)
	d.CollateralDescription = doc.CollateralDescription
	d.Notes = doc.Notes

	var err error
	if doc.DueDate != "" {
		if d.DueDate, err = domain.ParseDate(doc.DueDate); err != nil {
			return d, err
		}
	}
	if d.Principal, err = fromDecimal128(doc.Principal); err != nil {
		return d, err
	}
	if d.InterestRate, err = fromDecimal128(doc.InterestRate); err != nil {
		return d, err
	}
	if d.Interest, err = fromDecimal128(doc.Interest); err != nil {
		return d, err
	}
	if d.Total, err = fromDecimal128(doc.Total); err != nil {
		return d, err
	}
	if doc.CollateralValue != nil {
		v, err := fromDecimal128(*doc.CollateralValue)
		if err != nil {
			return d, err
		}
		d.CollateralValue = decimal.NewNullDecimal(v)
	}

	return d, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func toNullDecimal128(d decimal.NullDecimal) (*primitive.Decimal128, error) {
	if !d.Valid {
		return nil, nil
	}
	v, err := toDecimal128(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}
