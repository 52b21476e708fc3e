package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"

	"github.com/robolink/serlink/pkg/mirror"
)

var (
	mqttURL = "mqtt://localhost:1883/serlink/"
)

func init() {
	if val := os.Getenv("SERLINK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mirror.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub("#", mirror.Handler(func(topic string, payload []byte) {
		log.Printf("%s = %s", topic, string(payload))
	}))
	<-(chan struct{})(nil)
}
