package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robolink/serlink/pkg/actu"
	"github.com/robolink/serlink/pkg/device"
)

var (
	listenAddr = ":8137"
	timeout    = device.DefaultTimeout
)

func init() {
	flag.StringVar(&listenAddr, "listen", listenAddr, "Listen address for websocket connections.")
	flag.DurationVar(&timeout, "timeout", timeout, "Watchdog timeout.")
}

func main() {
	flag.Parse()

	http.Handle("/dev", websocket.Handler(serveDevice))
	glog.Infof("devsim listening on %s (endpoint ws://HOST%s/dev)", listenAddr, listenAddr)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		glog.Exit(err)
	}
}

// serveDevice runs one simulated device per connection, mirroring the
// default topology: a blinking LED, a servo and a DC motor.
func serveDevice(ws *websocket.Conn) {
	defer ws.Close()
	peer := ws.Request().RemoteAddr
	glog.Infof("host connected from %s", peer)

	led := actu.NewBlinker(actu.SwitchFunc(func(on bool) {
		glog.Infof("[%s] LED1 %v", peer, on)
	}), 0)
	srv := actu.NewServo(actu.OutputFunc(func(v int) {
		glog.Infof("[%s] SRV1 angle=%d", peer, v)
	}), 0, 180, 90)
	mot := actu.NewMotor(actu.OutputFunc(func(v int) {
		glog.Infof("[%s] MOT1 throttle=%d", peer, v)
	}), 255)

	reg := device.NewRegistry()
	must(reg.RegisterUpdate("LED1", 0, led.Handler()))
	must(reg.RegisterUpdate("SRV1", 90, srv.Handler()))
	must(reg.RegisterUpdate("MOT1", 0, mot.Handler()))

	loop := device.NewLoop(ws, reg, timeout)
	loop.AddTask(led.Task())
	if err := loop.Run(context.Background()); err != nil {
		glog.Infof("host %s gone: %v", peer, err)
	}
}

func must(err error) {
	if err != nil {
		glog.Fatalln(err)
	}
}
