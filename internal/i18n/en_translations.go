// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package i18n

import "net/http"

//revive:disable
var (
	MsgConfigFailed               = tam("TA10100", "Failed to read config: %s")
	MsgJSONDecodeFailed           = tam("TA10101", "Failed to decode input JSON", http.StatusBadRequest)
	MsgAPIServerStartFailed       = tam("TA10102", "Unable to start listener on %s: %s")
	MsgTLSConfigFailed            = tam("TA10103", "Failed to initialize TLS configuration")
	MsgInvalidCAFile              = tam("TA10104", "Invalid CA certificates file")
	MsgResponseMarshalError       = tam("TA10105", "Failed to serialize response data", http.StatusInternalServerError)
	Msg404NotFound                = tam("TA10106", "Not found", http.StatusNotFound)
	MsgUnknownLedgerPlugin        = tam("TA10107", "Unknown ledger plugin: %s")
	MsgUnknownDatabasePlugin      = tam("TA10108", "Unknown database plugin '%s'")
	MsgEthconnectRESTErr          = tam("TA10109", "Error from ethconnect: %s")
	MsgContextCanceled            = tam("TA10110", "Context cancelled")
	MsgDBInitFailed               = tam("TA10111", "Database initialization failed")
	MsgDBQueryBuildFailed         = tam("TA10112", "Database query builder failed")
	MsgDBBeginFailed              = tam("TA10113", "Database begin transaction failed")
	MsgDBQueryFailed              = tam("TA10114", "Database query failed")
	MsgDBInsertFailed             = tam("TA10115", "Database insert failed")
	MsgDBUpdateFailed             = tam("TA10116", "Database update failed")
	MsgDBDeleteFailed             = tam("TA10117", "Database delete failed")
	MsgDBCommitFailed             = tam("TA10118", "Database commit failed")
	MsgDBReadErr                  = tam("TA10119", "Database resultset read error from table '%s'")
	MsgDBMigrationFailed          = tam("TA10120", "Database migration failed")
	MsgDBLockFailed               = tam("TA10121", "Database table lock failed")
	MsgDBUpdateConflict           = tam("TA10122", "Update affected no rows, the record was changed concurrently", http.StatusConflict)
	MsgInvalidFilterField         = tam("TA10123", "Unknown filter '%s'", http.StatusBadRequest)
	MsgInvalidValueForFilterField = tam("TA10124", "Unable to parse value for filter '%s'", http.StatusBadRequest)
	MsgUnsupportedSQLOpInFilter   = tam("TA10125", "No SQL mapping implemented for filter operator '%s'", http.StatusBadRequest)
	MsgScanFailed                 = tam("TA10126", "Failed to restore type '%T' into '%T'")
	MsgInvalidHex                 = tam("TA10127", "Invalid hex supplied", http.StatusBadRequest)
	MsgInvalidWrongLenB32         = tam("TA10128", "Byte length must be 32 (64 hex characters)", http.StatusBadRequest)
	MsgInvalidUUID                = tam("TA10129", "Invalid UUID supplied", http.StatusBadRequest)
	MsgTimeParseFail              = tam("TA10130", "Cannot parse time as RFC3339, Unix, or UnixNano: '%s'", http.StatusBadRequest)
	MsgDurationParseFail          = tam("TA10131", "Unable to parse '%s' as duration string, or millisecond number", http.StatusBadRequest)
	MsgInitializationNilDepError  = tam("TA10132", "Initialization error due to missing dependencies")
	MsgInvalidPathParam           = tam("TA10133", "Invalid value '%s' for path parameter '%s'", http.StatusBadRequest)

	MsgValidationError          = tam("TA10140", "Invalid ticket request: %s", http.StatusBadRequest)
	MsgDuplicateTicket          = tam("TA10141", "Ticket already issued for booking '%s'", http.StatusConflict)
	MsgSigningError             = tam("TA10142", "Ticket signing failed: %s", http.StatusInternalServerError)
	MsgSignerKeyUnavailable     = tam("TA10143", "Signing key unavailable: %s", http.StatusInternalServerError)
	MsgCanonicalizationMissing  = tam("TA10144", "Canonicalization failed: required field '%s' is missing or null", http.StatusBadRequest)
	MsgCanonicalizationType     = tam("TA10145", "Canonicalization failed: unsupported value type %T for field '%s'", http.StatusBadRequest)
	MsgCanonicalizationUTF8     = tam("TA10232", "Canonicalization failed: field '%s' is not valid UTF-8", http.StatusBadRequest)
	MsgTreeConstructionEmpty    = tam("TA10146", "Cannot build a Merkle tree with no leaves", http.StatusInternalServerError)
	MsgTreeLeafCountMismatch    = tam("TA10147", "Batch '%s' records %d tickets but %d leaves were found", http.StatusInternalServerError)
	MsgLedgerNetworkError       = tam("TA10148", "Ledger '%s' network error: %s", http.StatusBadGateway)
	MsgLedgerRejectionError     = tam("TA10149", "Ledger '%s' rejected the request: %s", http.StatusUnprocessableEntity)
	MsgConfirmationTimeout      = tam("TA10150", "Anchor '%s' was not confirmed within %s", http.StatusGatewayTimeout)
	MsgTicketNotFound           = tam("TA10151", "Ticket '%s' not found", http.StatusNotFound)
	MsgBatchNotFound            = tam("TA10152", "Batch '%s' not found", http.StatusNotFound)
	MsgAnchorNotFound           = tam("TA10153", "Anchor '%s' not found", http.StatusNotFound)
	MsgProofNotFound            = tam("TA10154", "No Merkle proof for ticket '%s', it has not been sealed into a batch yet", http.StatusNotFound)
	MsgInvalidTicketTransition  = tam("TA10155", "Ticket '%s' cannot move from status '%s' to '%s'", http.StatusConflict)
	MsgUnknownHashAlgorithm     = tam("TA10156", "Unknown hash algorithm '%s'")
	MsgInvalidQRPayload         = tam("TA10157", "Invalid QR payload: %s", http.StatusBadRequest)
	MsgUnknownQREncoding        = tam("TA10158", "Unknown QR payload encoding '%s'")
	MsgVerifyPayloadRequired    = tam("TA10159", "A QR payload is required for verification", http.StatusBadRequest)
	MsgInvalidVerifyLevel       = tam("TA10160", "Unknown verification level '%s'", http.StatusBadRequest)
	MsgInvalidProofSide         = tam("TA10161", "Invalid Merkle proof side '%s'", http.StatusBadRequest)
	MsgAMQPConnectFailed        = tam("TA10162", "Failed to connect to AMQP broker at '%s'")
	MsgAMQPSetupFailed          = tam("TA10163", "Failed to declare AMQP topology for queue '%s'")
	MsgLedgerUnreachable        = tam("TA10164", "Ledger '%s' is not reachable", http.StatusServiceUnavailable)
	MsgInvalidSignerKey         = tam("TA10165", "Invalid secp256k1 private key")
	MsgSignerKeyFileFailed      = tam("TA10166", "Failed to read or write signing key file '%s'")
	MsgLocalLedgerInitFailed    = tam("TA10167", "Failed to initialize the local ledger database")
	MsgEthconnectMissingURL     = tam("TA10168", "Missing ethconnect URL")
	MsgEthconnectMissingInst    = tam("TA10169", "Missing contract instance path for ethconnect")
	MsgEthRPCError              = tam("TA10170", "Ethereum JSON-RPC error %d: %s")
	MsgEthRPCBadResult          = tam("TA10171", "Unable to parse JSON-RPC result for %s: %s")
	MsgLedgerTxNotFound         = tam("TA10172", "Transaction '%s' not found on ledger")
	MsgLedgerTxReverted         = tam("TA10173", "Transaction '%s' was reverted")
	MsgTicketAlreadyBatched     = tam("TA10174", "Ticket '%s' already belongs to batch '%s'")
	MsgSigningKeyMismatch       = tam("TA10175", "Payload public key does not match the issuer key")
	MsgSignatureInvalid         = tam("TA10176", "Signature does not verify against the embedded public key")
	MsgProofMismatch            = tam("TA10177", "Merkle proof does not reproduce root '%s'")
	MsgRootNotOnLedger          = tam("TA10178", "Merkle root '%s' is not recorded on the ledger")
	MsgPayloadTicketMismatch    = tam("TA10179", "QR payload does not match the issued ticket record")
	MsgRetriesExhausted         = tam("TA10180", "Anchor submission failed after %d attempts: %s")
	MsgInvalidConfirmationCount = tam("TA10181", "Invalid confirmation count '%s' reported by ledger")
	MsgBatchEmpty               = tam("TA10182", "Batch '%s' has no tickets and cannot be sealed", http.StatusInternalServerError)
	MsgInvalidLeafIndex         = tam("TA10183", "Leaf index %d is out of range for a tree of %d leaves")
	MsgEthRPCMissingURL         = tam("TA10184", "Missing JSON-RPC URL for the ethereum ledger")
	MsgEthconnectBadReceipt     = tam("TA10185", "Ethconnect returned no transaction hash for the submission")
	MsgQREncodeFailed           = tam("TA10186", "Failed to encode the QR payload of ticket '%s'")
	MsgSchemaLoadFailed         = tam("TA10187", "Failed to load the ticket request schema")
	MsgInvalidFare              = tam("TA10188", "Invalid fare '%s'", http.StatusBadRequest)
	MsgTicketUnknownHash        = tam("TA10189", "No ticket was issued with hash '%s'")
	MsgTicketUsed               = tam("TA10190", "Ticket '%s' has already been used")
	MsgTicketRevoked            = tam("TA10191", "Ticket '%s' has been revoked")
	MsgTicketExpired            = tam("TA10192", "Ticket '%s' expired at %s")
	MsgRootNotConfirmed         = tam("TA10193", "Merkle root '%s' is not yet confirmed on the ledger (anchor status '%s')")
	MsgChainCheckUnavailable    = tam("TA10194", "Chain verification unavailable: %s")
	MsgUnknownTick              = tam("TA10195", "Unknown scheduler tick '%s'", http.StatusNotFound)
	MsgRequestTimeout           = tam("TA10196", "The request with id '%s' timed out after %.2fms", http.StatusRequestTimeout)
	MsgInvalidContentType       = tam("TA10197", "Invalid content type", http.StatusUnsupportedMediaType)
	Msg404NoResult              = tam("TA10198", "No result found", http.StatusNotFound)
	MsgInvalidOutputOption      = tam("TA10199", "Invalid output option '%s'")
)

// API route descriptions, used in the generated OpenAPI document
var (
	MsgTBD                    = tam("TA10200", "TBD")
	MsgPostTicketDesc         = tam("TA10201", "Issues a signed ticket for a confirmed booking, or returns the existing ticket for the booking")
	MsgGetTicketsDesc         = tam("TA10202", "Lists tickets")
	MsgGetTicketByIDDesc      = tam("TA10203", "Gets a ticket by its ID")
	MsgGetTicketProofDesc     = tam("TA10204", "Gets the Merkle inclusion proof for a sealed ticket")
	MsgPostTicketUseDesc      = tam("TA10205", "Marks a valid ticket as used at boarding")
	MsgPostTicketRevokeDesc   = tam("TA10206", "Revokes a valid ticket, for example on trip cancellation")
	MsgPostVerifyDesc         = tam("TA10207", "Verifies a ticket QR payload at signature, proof or chain level")
	MsgGetBatchesDesc         = tam("TA10208", "Lists Merkle batches")
	MsgGetBatchByIDDesc       = tam("TA10209", "Gets a Merkle batch by its ID")
	MsgGetBatchTicketsDesc    = tam("TA10210", "Lists the leaf entries of a Merkle batch in leaf order")
	MsgGetAnchorsDesc         = tam("TA10211", "Lists blockchain anchors")
	MsgGetAnchorByIDDesc      = tam("TA10212", "Gets a blockchain anchor by its ID")
	MsgGetStatusDesc          = tam("TA10213", "Gets the issuer key, hashing configuration and ledger status")
	MsgAdminProcessBatches    = tam("TA10214", "Seals every pending batch that meets the readiness rule")
	MsgAdminAdvanceAnchors    = tam("TA10215", "Submits ready batch roots and polls submitted anchors for confirmation")
	MsgAdminExpireTickets     = tam("TA10216", "Marks valid tickets past their expiry as expired")
	MsgFilterParamDesc        = tam("TA10217", "Data filter field. Prefixes supported: > >= < <= @ ! !@")
	MsgFilterSortDesc         = tam("TA10218", "Sort field. For multi-field sort use comma separated values (or multiple query values) with '-' prefix for descending")
	MsgFilterDescendingDesc   = tam("TA10219", "Descending sort order (overrides all fields in a multi-field sort)")
	MsgFilterSkipDesc         = tam("TA10220", "The number of records to skip (max: %d). Unsuitable for bulk operations")
	MsgFilterLimitDesc        = tam("TA10221", "The maximum number of records to return (max: %d)")
	MsgSuccessResponse        = tam("TA10222", "Success")
	MsgFilterAscendingDesc    = tam("TA10223", "Ascending sort order (overrides all fields in a multi-field sort)")
	MsgFilterCountDesc        = tam("TA10224", "Return a total count as well as items (adds extra database processing)")
	MsgRequestTimeoutDesc     = tam("TA10225", "Server-side request timeout (milliseconds, or set a custom suffix like 10s)")
	MsgTicketIDParamDesc      = tam("TA10226", "The ticket ID")
	MsgBatchIDParamDesc       = tam("TA10227", "The Merkle batch ID")
	MsgAnchorIDParamDesc      = tam("TA10228", "The blockchain anchor ID")
	MsgCreatedResponse        = tam("TA10229", "Created")
)

// Ledger lookups
var (
	MsgRootTxNotFound         = tam("TA10230", "Root %s is recorded on ledger '%s' but its transaction was not found")
	MsgEthMissingContractAddr = tam("TA10231", "Missing contract address for the ethereum ledger")
)
