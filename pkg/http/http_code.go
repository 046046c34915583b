// Copyright 2025 Atlas Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	MapIdIsEmpty                  = failed(5002, "Map id is empty")
	InternalError                 = failed(5000, "Internal error, please contact the administrator")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")

	UserNotExist                  = failed(4041, "User does not exist")
	UserAlreadyExist              = failed(4042, "User already exists")
	UserIncorrectPassword         = failed(4043, "User incorrect password")
	UsernameArePasswordIsRequired = failed(4045, "Username and password are required")

	// Role / sharing 46xx
	InvalidRole         = failed(4601, "Invalid role")
	InvalidTarget       = failed(4602, "Target user role cannot be changed")
	SelfActionForbidden = failed(4603, "Action cannot be applied to yourself")
	LastEditorProtected = failed(4604, "Map must retain at least one editor")

	// Invitation 47xx
	DuplicateInvitation  = failed(4701, "A pending invitation already exists for this email")
	InvitationInvalid    = failed(4702, "Invitation is no longer valid")
	AlreadyProcessed     = failed(4703, "Invitation has already been processed")
	RegistrationRequired = failed(4704, "Registration data is required to accept this invitation")
	WrongUser            = failed(4705, "Invitation was issued to a different account")
)

var (
	Success = success(200, "Request Success")
)

// failed constructor
func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

// success constructor
func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
