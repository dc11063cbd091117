package firestore

import "github.com/m-mizutani/fireconf"

// IndexConfig returns the composite indexes the list queries need.
// Every child collection is listed by parent and ordered by creation time.
func IndexConfig(collectionPrefix string) *fireconf.Config {
	name := func(base string) string {
		if collectionPrefix != "" {
			return collectionPrefix + "_" + base
		}
		return base
	}

	byParent := func(collection, parentField string) fireconf.Collection {
		return fireconf.Collection{
			Name: name(collection),
			Indexes: []fireconf.Index{
				{
					Fields: []fireconf.IndexField{
						{Path: parentField, Order: fireconf.OrderAscending},
						{Path: fieldCreatedAt, Order: fireconf.OrderAscending},
					},
				},
			},
		}
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			byParent("components", fieldProjectID),
			byParent("failure_modes", fieldComponentID),
			byParent("causes", fieldFailureModeID),
			byParent("effects", fieldFailureModeID),
			byParent("controls", fieldFailureModeID),
			byParent("actions", fieldFailureModeID),
		},
	}
}
