package validators

import "go.mongodb.org/mongo-driver/bson"

var BarberValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"start_time",
			"end_time",
			"slot_minutes",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"specialties": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 50,
				},
			},

			"phone": bson.M{
				"bsonType": "string",
			},

			"photo_url": bson.M{
				"bsonType": "string",
			},

			"working_days": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
					"enum": []string{
						"sat", "sun", "mon", "tue", "wed", "thu", "fri",
					},
				},
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},

			"slot_minutes": bson.M{
				"bsonType": "int",
				"minimum":  10,
				"maximum":  240,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
