// Copyright 2025 Aiboard Team
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

	// Unauthorized 401, api key
	Unauthorized          = failed(4401, "Unauthorized")
	AuthenticationFailed  = failed(4402, "Authentication failed")
	ApiKeyBeEmpty         = failed(4404, "Api key cannot be empty")
	InvalidApiKey         = failed(4405, "Invalid api key")
	ApiKeyExpired         = failed(4406, "Api key is expired")
	ApiKeyFormatIncorrect = failed(4407, "Api key format is incorrect")
	ApiKeyRevoked         = failed(4408, "Api key has been revoked")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	ProjectNotExist      = failed(4041, "Project does not exist")
	ProjectNameIsEmpty   = failed(4101, "Project name is required")
	ProjectTeamIsEmpty   = failed(4102, "Project team is required")
	InvalidStatusValue   = failed(4103, "Invalid status value")
	InvalidPriorityValue = failed(4104, "Invalid priority value")

	ImportFileIsRequired    = failed(4201, "Import file is required")
	UnsupportedImportFormat = failed(4202, "Unsupported import file format")
	ImportFileParseFailed   = failed(4203, "Failed to parse import file")
	ImportNoRowsAccepted    = failed(4204, "No importable rows found in file")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
