// pkg/ai/mock_client.go

package ai

import "farmwise/pkg/weather"

// mockClient backs the degraded mode: no credential configured, every
// operation answers the fixed unavailable message.
type mockClient struct{}

func NewMock() Client { return &mockClient{} }

func (m *mockClient) Enabled() bool { return false }

func (m *mockClient) Advise(string, map[string]any, *weather.Snapshot, string, string) string {
	return MsgUnavailable
}

func (m *mockClient) Identify(string) string { return MsgUnavailable }

func (m *mockClient) Chat(string, string, string, int) (string, error) {
	return MsgUnavailable, nil
}

func (m *mockClient) Transcribe(string, []byte) (string, error) {
	return "", nil
}
