// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
)

// event queue size
const sendQueueSize = 100

type message struct {
	topic   string
	payload []byte
}

type broadcaster struct {
	addresses []string
	queue     chan message
}

// store the bind addresses; the socket itself is created inside the
// background goroutine since ZeroMQ sockets are not thread safe
func (brdc *broadcaster) initialise(addresses []string) error {
	brdc.addresses = addresses
	brdc.queue = make(chan message, sendQueueSize)
	return nil
}

// Send - queue one event for broadcast
//
// marshal failures and a full queue only log; the market never blocks
// on its observers
func Send(topic string, payload interface{}) {

	globalData.RLock()
	queue := globalData.brdc.queue
	log := globalData.log
	globalData.RUnlock()

	if nil == queue {
		return
	}

	data, err := json.Marshal(payload)
	if nil != err {
		log.Errorf("send: %s marshal error: %s", topic, err)
		return
	}

	select {
	case queue <- message{topic: topic, payload: data}:
	default:
		log.Errorf("send: %s queue full, event dropped", topic)
	}
}

// background loop
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := args.(*logger.L)

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		log.Criticalf("zmq socket error: %s", err)
		return
	}

	for _, address := range brdc.addresses {
		if err := socket.Bind(address); nil != err {
			log.Criticalf("bind: %q  error: %s", address, err)
			socket.Close()
			return
		}
		log.Infof("broadcasting on: %s", address)
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case m := <-brdc.queue:
			if _, err := socket.SendMessage(m.topic, m.payload); nil != err {
				log.Errorf("send: %s  error: %s", m.topic, err)
			}
		}
	}

	socket.Close()
}
