// Package mirror republishes device-reported command state over MQTT
// so monitors can observe the link without touching the serial stream.
package mirror

import (
	"net/url"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// Queue wraps the MQTT client.
type Queue struct {
	Client      paho.Client
	TopicPrefix string

	subsLock sync.RWMutex
	subs     map[string][]Handler
}

// MatchTopic matches topic against a subscription pattern with MQTT
// wildcards ('+' and trailing '#').
func MatchTopic(topic, pattern string) bool {
	tokensT, tokensP := strings.Split(topic, "/"), strings.Split(pattern, "/")
	if len(tokensP) > len(tokensT) {
		return false
	}
	// only a trailing '#' may cover extra topic levels
	if len(tokensP) < len(tokensT) && tokensP[len(tokensP)-1] != "#" {
		return false
	}
	for i, token := range tokensP {
		if token == "+" {
			continue
		}
		if token == "#" && i+1 == len(tokensP) {
			break
		}
		if token != tokensT[i] {
			return false
		}
	}
	return true
}

// ClientOptionsFromURL creates ClientOptions from a broker URL of the
// form mqtt://host:port/topic-prefix[?client-id=...].
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	clientID := u.Query().Get("client-id")
	if clientID == "" {
		clientID = defaultClientID()
	}
	opts.SetClientID(clientID)

	return opts, topicPrefix, nil
}

// defaultClientID derives a stable client identity from the machine.
func defaultClientID() string {
	id, err := machineid.ID()
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return "serlink"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return "serlink-" + id
}

// NewQueue creates a Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix, subs: make(map[string][]Handler)}
	options.SetOnConnectHandler(q.onConnect)
	options.SetConnectionLostHandler(q.onConnectionLost)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates a Queue from a broker URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Sub subscribes a topic.
func (q *Queue) Sub(topic string, handler Handler) paho.Token {
	q.subsLock.Lock()
	handlers := q.subs[topic]
	q.subs[topic] = append(handlers, handler)
	q.subsLock.Unlock()
	if handlers != nil {
		return &paho.DummyToken{}
	}
	glog.V(2).Infof("SUB %q", q.TopicPrefix+topic)
	return q.Client.Subscribe(q.TopicPrefix+topic, 0, q.dispatch)
}

// PubRetained publishes a retained message so late subscribers see the
// last reported state.
func (q *Queue) PubRetained(topic string, payload []byte) paho.Token {
	return q.Client.Publish(q.TopicPrefix+topic, 0, true, payload)
}

func (q *Queue) onConnect(paho.Client) {
	glog.Info("mqtt connected")
	filters := make(map[string]byte)
	q.subsLock.RLock()
	for topic := range q.subs {
		filters[q.TopicPrefix+topic] = 0
	}
	q.subsLock.RUnlock()
	if len(filters) > 0 {
		q.Client.SubscribeMultiple(filters, q.dispatch)
	}
}

func (q *Queue) onConnectionLost(c paho.Client, err error) {
	glog.Warningf("mqtt connection lost: %v", err)
}

func (q *Queue) dispatch(c paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, q.TopicPrefix) {
		return
	}
	topic = topic[len(q.TopicPrefix):]
	var handlers []Handler
	q.subsLock.RLock()
	for pattern, hs := range q.subs {
		if MatchTopic(topic, pattern) {
			handlers = append(handlers, hs...)
		}
	}
	q.subsLock.RUnlock()
	payload := msg.Payload()
	for _, h := range handlers {
		h(topic, payload)
	}
}
