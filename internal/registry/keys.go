package registry

import (
	"github.com/nfrund/alphaprime/internal/catalog"
	"github.com/nfrund/alphaprime/internal/pubsub"
)

// Service keys shared between modules. Using constants prevents typos.
const (
	CatalogServiceKey Key[*catalog.Service]  = "catalog.service"
	PublisherKey      Key[pubsub.Publisher]  = "pubsub.publisher"
	SubscriberKey     Key[pubsub.Subscriber] = "pubsub.subscriber"
	// To add a new service key:
	// GreeterServiceKey Key[*greeter.Service] = "greeter.service"
)
