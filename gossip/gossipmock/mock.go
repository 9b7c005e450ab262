// Package gossipmock provides a generated-style mock of gossip.Transport
// for exercising Service.Announce and Service.Gossip without a real
// network.
package gossipmock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	overlay "github.com/luxfi/parity/overlay"
)

// MockTransport is a mock of the Transport interface.
type MockTransport struct {
	ctrl     *gomock.Controller
	recorder *MockTransportMockRecorder
}

// MockTransportMockRecorder is the mock recorder for MockTransport.
type MockTransportMockRecorder struct {
	mock *MockTransport
}

// NewMockTransport creates a new mock instance.
func NewMockTransport(ctrl *gomock.Controller) *MockTransport {
	mock := &MockTransport{ctrl: ctrl}
	mock.recorder = &MockTransportMockRecorder{mock: mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTransport) EXPECT() *MockTransportMockRecorder {
	return m.recorder
}

// Broadcast mocks base method.
func (m *MockTransport) Broadcast(senderID int, ann overlay.Announcement) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Broadcast", senderID, ann)
	ret0, _ := ret[0].(error)
	return ret0
}

// Broadcast indicates an expected call of Broadcast.
func (mr *MockTransportMockRecorder) Broadcast(senderID, ann interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Broadcast", reflect.TypeOf((*MockTransport)(nil).Broadcast), senderID, ann)
}

// Send mocks base method.
func (m *MockTransport) Send(toID int, ann overlay.Announcement) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", toID, ann)
	ret0, _ := ret[0].(error)
	return ret0
}

// Send indicates an expected call of Send.
func (mr *MockTransportMockRecorder) Send(toID, ann interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockTransport)(nil).Send), toID, ann)
}
