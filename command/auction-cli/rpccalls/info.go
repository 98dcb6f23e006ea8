// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/yopTupoTop/auction/rpc/node"
)

// GetInfo - obtain the node state
func (client *Client) GetInfo() (*node.InfoReply, error) {

	reply := &node.InfoReply{}
	if err := client.client.Call("Node.Info", &node.InfoArguments{}, reply); nil != err {
		return nil, err
	}

	client.printJson("Info Reply", reply)

	return reply, nil
}
