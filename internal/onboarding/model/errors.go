/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import "errors"

// ErrConcurrentUpdate signals that an optimistic version guard failed because
// another request modified the same session first.
var ErrConcurrentUpdate = errors.New("record was modified concurrently")

// ErrIllegalTransition signals a step status change the state machine forbids.
var ErrIllegalTransition = errors.New("illegal step status transition")
