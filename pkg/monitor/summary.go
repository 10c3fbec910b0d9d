package monitor

import (
	"fmt"
	"time"

	"github.com/protei/gtp/pkg/gtpv1"
	"github.com/protei/gtp/pkg/gtpv2"
)

// Protocol identifies the GTP dialect a datagram decoded as.
type Protocol string

const (
	ProtocolGTPv1C  Protocol = "GTPv1-C"
	ProtocolGTPv1U  Protocol = "GTPv1-U"
	ProtocolGTPv2C  Protocol = "GTPv2-C"
	ProtocolUnknown Protocol = "Unknown"
)

// Direction classifies a message as request or response.
type Direction string

const (
	DirectionRequest  Direction = "request"
	DirectionResponse Direction = "response"
	DirectionUnknown  Direction = "unknown"
)

// Result is the outcome signalled by the cause IE, when present.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultUnknown Result = "unknown"
)

// Summary is the flattened view of one decoded GTP message, used for
// logging, CDR records and the live feed.
type Summary struct {
	Timestamp   time.Time `json:"timestamp"`
	Protocol    Protocol  `json:"protocol"`
	MessageType uint8     `json:"message_type"`
	MessageName string    `json:"message_name"`
	Direction   Direction `json:"direction"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	TEID        uint32    `json:"teid,omitempty"`
	Sequence    uint32    `json:"sequence,omitempty"`
	IMSI        string    `json:"imsi,omitempty"`
	MSISDN      string    `json:"msisdn,omitempty"`
	APN         string    `json:"apn,omitempty"`
	Result      Result    `json:"result"`
	CauseCode   uint8     `json:"cause_code,omitempty"`
	PayloadSize int       `json:"payload_size"`
}

var gtpv1MessageNames = map[uint8]string{
	gtpv1.MsgEchoRequest:                           "EchoRequest",
	gtpv1.MsgEchoResponse:                          "EchoResponse",
	gtpv1.MsgVersionNotSupported:                   "VersionNotSupported",
	gtpv1.MsgCreatePDPContextRequest:               "CreatePDPContextRequest",
	gtpv1.MsgCreatePDPContextResponse:              "CreatePDPContextResponse",
	gtpv1.MsgUpdatePDPContextRequest:               "UpdatePDPContextRequest",
	gtpv1.MsgUpdatePDPContextResponse:              "UpdatePDPContextResponse",
	gtpv1.MsgDeletePDPContextRequest:               "DeletePDPContextRequest",
	gtpv1.MsgDeletePDPContextResponse:              "DeletePDPContextResponse",
	gtpv1.MsgErrorIndication:                       "ErrorIndication",
	gtpv1.MsgSupportedExtensionHeadersNotification: "SupportedExtensionHeadersNotification",
	gtpv1.MsgEndMarker:                             "EndMarker",
	gtpv1.MsgGPDU:                                  "G-PDU",
}

var gtpv2MessageNames = map[uint8]string{
	gtpv2.MsgEchoRequest:         "EchoRequest",
	gtpv2.MsgEchoResponse:        "EchoResponse",
	gtpv2.MsgVersionNotSupported: "VersionNotSupported",
}

func messageName(names map[uint8]string, msgType uint8) string {
	if name, ok := names[msgType]; ok {
		return name
	}
	return fmt.Sprintf("Type_%d", msgType)
}

// direction classifies by the request/response pairing of the message
// type codes: responses follow their requests by one.
func direction(msgType uint8) Direction {
	switch msgType {
	case gtpv1.MsgEchoRequest, gtpv1.MsgCreatePDPContextRequest,
		gtpv1.MsgUpdatePDPContextRequest, gtpv1.MsgDeletePDPContextRequest:
		return DirectionRequest
	case gtpv1.MsgEchoResponse, gtpv1.MsgCreatePDPContextResponse,
		gtpv1.MsgUpdatePDPContextResponse, gtpv1.MsgDeletePDPContextResponse:
		return DirectionResponse
	}
	return DirectionUnknown
}

// summarizeV1 extracts the correlation fields of a decoded GTPv1
// message.
func summarizeV1(m gtpv1.Message, proto Protocol) Summary {
	s := Summary{
		Protocol:    proto,
		MessageType: m.MessageType(),
		MessageName: messageName(gtpv1MessageNames, m.MessageType()),
		Direction:   direction(m.MessageType()),
		Result:      ResultUnknown,
	}
	setCause := func(c gtpv1.Cause) {
		s.CauseCode = c.Value
		if c.Value == gtpv1.CauseRequestAccepted {
			s.Result = ResultSuccess
		} else {
			s.Result = ResultFailure
		}
	}
	switch v := m.(type) {
	case gtpv1.VersionNotSupported:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
	case gtpv1.EchoRequest:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
	case gtpv1.EchoResponse:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
	case gtpv1.CreatePDPContextRequest:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
		if v.IMSI != nil {
			s.IMSI = v.IMSI.IMSI
		}
		if v.MSISDN != nil {
			s.MSISDN = v.MSISDN.MSISDN
		}
		if v.APN != nil {
			s.APN = v.APN.Name
		}
	case gtpv1.CreatePDPContextResponse:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
		setCause(v.Cause)
	case gtpv1.UpdatePDPContextRequest:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
		if v.IMSI != nil {
			s.IMSI = v.IMSI.IMSI
		}
	case gtpv1.UpdatePDPContextResponse:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
		setCause(v.Cause)
	case gtpv1.DeletePDPContextRequest:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
	case gtpv1.DeletePDPContextResponse:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
		setCause(v.Cause)
	case gtpv1.ErrorIndication:
		s.TEID = v.Header.TEID
		s.Sequence = uint32(v.Header.Sequence)
		s.Result = ResultFailure
	case gtpv1.EndMarker:
		s.TEID = v.Header.TEID
	case gtpv1.GPDU:
		s.TEID = v.Header.TEID
		s.PayloadSize = len(v.Payload)
	}
	return s
}

// summarizeV2 extracts the correlation fields of a decoded GTPv2-C
// message.
func summarizeV2(m gtpv2.Message) Summary {
	s := Summary{
		Protocol:    ProtocolGTPv2C,
		MessageType: m.MessageType(),
		MessageName: messageName(gtpv2MessageNames, m.MessageType()),
		Direction:   DirectionUnknown,
		Result:      ResultUnknown,
	}
	switch v := m.(type) {
	case gtpv2.EchoRequest:
		s.Sequence = v.Header.Sequence
		s.Direction = DirectionRequest
	case gtpv2.EchoResponse:
		s.Sequence = v.Header.Sequence
		s.Direction = DirectionResponse
	case gtpv2.VersionNotSupported:
		s.Sequence = v.Header.Sequence
	}
	return s
}
