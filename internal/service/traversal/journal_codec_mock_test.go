package traversal

import (
	"sync"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

var _ journalCodec = &journalCodecMock{}

type journalCodecMock struct {
	EncodeFunc func(j domain.Journal) ([]byte, error)
	DecodeFunc func(sealed []byte) (domain.Journal, error)

	calls struct {
		Encode []struct {
			J domain.Journal
		}
		Decode []struct {
			Sealed []byte
		}
	}
	lockEncode sync.RWMutex
	lockDecode sync.RWMutex
}

func (mock *journalCodecMock) Encode(j domain.Journal) ([]byte, error) {
	if mock.EncodeFunc == nil {
		panic("journalCodecMock.EncodeFunc: method is nil but journalCodec.Encode was just called")
	}
	callInfo := struct {
		J domain.Journal
	}{
		J: j,
	}
	mock.lockEncode.Lock()
	mock.calls.Encode = append(mock.calls.Encode, callInfo)
	mock.lockEncode.Unlock()
	return mock.EncodeFunc(j)
}

func (mock *journalCodecMock) EncodeCalls() []struct {
	J domain.Journal
} {
	mock.lockEncode.RLock()
	calls := mock.calls.Encode
	mock.lockEncode.RUnlock()
	return calls
}

func (mock *journalCodecMock) Decode(sealed []byte) (domain.Journal, error) {
	if mock.DecodeFunc == nil {
		panic("journalCodecMock.DecodeFunc: method is nil but journalCodec.Decode was just called")
	}
	callInfo := struct {
		Sealed []byte
	}{
		Sealed: sealed,
	}
	mock.lockDecode.Lock()
	mock.calls.Decode = append(mock.calls.Decode, callInfo)
	mock.lockDecode.Unlock()
	return mock.DecodeFunc(sealed)
}

func (mock *journalCodecMock) DecodeCalls() []struct {
	Sealed []byte
} {
	mock.lockDecode.RLock()
	calls := mock.calls.Decode
	mock.lockDecode.RUnlock()
	return calls
}
