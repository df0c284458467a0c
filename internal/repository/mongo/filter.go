package mongo

import (
	"regexp"

	"github.com/cemgthedev/ElitePlans-rest-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// substring builds a case-insensitive substring match. The needle is quoted so
// user input cannot inject regex syntax.
func substring(needle string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(needle), "$options": "i"}
}

func rangeDoc(r repository.Range) bson.M {
	doc := bson.M{}
	if r.Min != nil {
		doc["$gte"] = *r.Min
	}
	if r.Max != nil {
		doc["$lte"] = *r.Max
	}
	return doc
}

func intRangeDoc(r repository.IntRange) bson.M {
	doc := bson.M{}
	if r.Min != nil {
		doc["$gte"] = *r.Min
	}
	if r.Max != nil {
		doc["$lte"] = *r.Max
	}
	return doc
}

// findOptions translates pagination and the optional sort into driver options.
// Sort is only applied when both the field and direction were supplied.
func findOptions(page repository.Page, sort repository.Sort) *options.FindOptions {
	opts := options.Find().SetSkip(page.Skip()).SetLimit(int64(page.Limit))
	if sort.Active() {
		dir := 1
		if sort.Order == "desc" {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}})
	}
	return opts
}
