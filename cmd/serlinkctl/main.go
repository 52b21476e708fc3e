package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"golang.org/x/net/websocket"

	"github.com/robolink/serlink/pkg/command"
	"github.com/robolink/serlink/pkg/host"
	"github.com/robolink/serlink/pkg/mirror"
)

var (
	baud       = host.DefaultBaud
	commands   = "LED1=0,SRV1=90,MOT1=0"
	mqttURL    string
	sendEvery  = host.DefaultSendInterval
	devTimeout = host.DefaultDeviceTimeout
	evalOnly   bool
)

func init() {
	flag.IntVar(&baud, "baud", baud, "Serial baud rate.")
	flag.StringVar(&commands, "commands", commands, "Command topology as NAME=INIT,NAME=INIT,...")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "Optional MQTT broker URL to mirror device state.")
	flag.DurationVar(&sendEvery, "interval", sendEvery, "Transmission cycle interval.")
	flag.DurationVar(&devTimeout, "timeout", devTimeout, "Device watchdog timeout (for interval validation).")
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

const unconnectedPrompt = "[none] > "

type cli struct {
	shell *ishell.Shell
	conn  *host.Conn
	queue *mirror.Queue
}

func newConfig(endpoint string) (*host.Config, error) {
	cfg := host.NewConfig()
	cfg.Port = endpoint
	cfg.Baud = baud
	cfg.SendInterval = sendEvery
	cfg.DeviceTimeout = devTimeout
	for _, item := range strings.Split(commands, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kv := strings.SplitN(item, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("bad command spec %q, want NAME=INIT", item)
		}
		initValue, err := strconv.Atoi(kv[1])
		if err != nil {
			return nil, fmt.Errorf("bad init value in %q: %v", item, err)
		}
		if err = cfg.RegisterCommand(command.Name(kv[0]), initValue); err != nil {
			return nil, fmt.Errorf("register %q: %v", kv[0], err)
		}
	}
	return cfg, nil
}

func (c *cli) open(endpoint string) error {
	if c.conn != nil {
		return fmt.Errorf("already connected, close first")
	}
	cfg, err := newConfig(endpoint)
	if err != nil {
		return err
	}
	conn := host.NewConn(cfg)
	if c.queue != nil {
		conn.Handler = mirror.NewPublisher(c.queue).HandleFrame
	}
	if strings.HasPrefix(endpoint, "ws://") || strings.HasPrefix(endpoint, "wss://") {
		// simulated devices don't reset on connect
		cfg.SettleDelay = 0
		ws, err := websocket.Dial(endpoint, "", "http://localhost/")
		if err != nil {
			return err
		}
		if err = conn.OpenStream(ws); err != nil {
			return err
		}
	} else if err = conn.Open(); err != nil {
		return err
	}
	c.conn = conn
	c.shell.SetPrompt(fmt.Sprintf("%s > ", endpoint))
	return nil
}

func (c *cli) close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.shell.SetPrompt(unconnectedPrompt)
	return err
}

func (c *cli) mustBeConnected(fn func(*ishell.Context)) func(*ishell.Context) {
	return func(sc *ishell.Context) {
		if c.conn == nil {
			sc.Err(fmt.Errorf("not connected"))
			return
		}
		fn(sc)
	}
}

func (c *cli) addCmds() {
	c.shell.AddCmd(&ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"list", "l"},
		Help:    "list available serial endpoints",
		Func: func(sc *ishell.Context) {
			ports := host.Ports()
			if len(ports) == 0 {
				sc.Println("No ports found")
				return
			}
			for _, p := range ports {
				sc.Println(p)
			}
		},
	})
	c.shell.AddCmd(&ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "ENDPOINT (serial port or ws:// URL)",
		Func: func(sc *ishell.Context) {
			if len(sc.Args) != 1 {
				sc.Err(fmt.Errorf("endpoint expected"))
				return
			}
			if err := c.open(sc.Args[0]); err != nil {
				sc.Err(err)
			}
		},
	})
	c.shell.AddCmd(&ishell.Cmd{
		Name:    "set",
		Aliases: []string{"s"},
		Help:    "NAME VALUE",
		Func: c.mustBeConnected(func(sc *ishell.Context) {
			if len(sc.Args) != 2 {
				sc.Err(fmt.Errorf("name and value expected"))
				return
			}
			value, err := strconv.Atoi(sc.Args[1])
			if err != nil {
				sc.Err(err)
				return
			}
			if err = c.conn.UpdateCommand(command.Name(sc.Args[0]), value); err != nil {
				sc.Err(err)
			}
		}),
	})
	c.shell.AddCmd(&ishell.Cmd{
		Name:    "values",
		Aliases: []string{"v"},
		Help:    "show the current value of every registered command",
		Func: c.mustBeConnected(func(sc *ishell.Context) {
			for _, f := range c.conn.Values() {
				sc.Printf("%s = %d\n", f.Name, f.Value)
			}
		}),
	})
	c.shell.AddCmd(&ishell.Cmd{
		Name:    "close",
		Aliases: []string{"d"},
		Help:    "close the connection",
		Func: func(sc *ishell.Context) {
			if err := c.close(); err != nil {
				sc.Err(err)
			}
		},
	})
}

func main() {
	flag.Parse()

	c := &cli{shell: ishell.New()}
	c.shell.SetPrompt(unconnectedPrompt)
	c.addCmds()

	if mqttURL != "" {
		q, err := mirror.NewQueueFromURL(mqttURL)
		if err != nil {
			log.Fatalln(err)
		}
		if token := q.Connect(); token.Wait() && token.Error() != nil {
			log.Fatalln(token.Error())
		}
		defer q.Close()
		c.queue = q
	}
	defer c.close()

	if args := flag.Args(); len(args) > 0 {
		if err := c.shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if evalOnly {
		log.Fatalln("command expected")
	}
	c.shell.Run()
}
