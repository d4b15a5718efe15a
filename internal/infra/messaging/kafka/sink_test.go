package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gabapcia/transferwatch/internal/transferwatch"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var record = transferwatch.TransferRecord{
	TxHash:      "0xabc",
	From:        "0x1111111111111111111111111111111111111111",
	To:          "0x2222222222222222222222222222222222222222",
	Amount:      "60.00",
	BlockHeight: 11,
}

func TestSink_UpsertTransfer(t *testing.T) {
	t.Run("publishes the record keyed by hash", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, testConfig())
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			assert.Equal(t, "large-transfers", msg.Topic)

			key, err := msg.Key.Encode()
			require.NoError(t, err)
			assert.Equal(t, "0xabc", string(key))

			value, err := msg.Value.Encode()
			require.NoError(t, err)
			assert.JSONEq(t, `{
				"tx_hash": "0xabc",
				"from_addr": "0x1111111111111111111111111111111111111111",
				"to_addr": "0x2222222222222222222222222222222222222222",
				"amount": "60.00",
				"block_number": 11
			}`, string(value))
			return nil
		})

		s := newSink(producer, "large-transfers")
		defer s.Close()

		assert.NoError(t, s.UpsertTransfer(t.Context(), record))
	})

	t.Run("payload decodes back into the record", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, testConfig())
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
			var got transferwatch.TransferRecord
			if err := json.Unmarshal(value, &got); err != nil {
				return err
			}
			if got != record {
				return errors.New("payload does not match the record")
			}
			return nil
		})

		s := newSink(producer, "large-transfers")
		defer s.Close()

		assert.NoError(t, s.UpsertTransfer(t.Context(), record))
	})

	t.Run("republishing sends another message with the same key", func(t *testing.T) {
		var keys []string
		keyOf := func(msg *sarama.ProducerMessage) error {
			key, err := msg.Key.Encode()
			if err != nil {
				return err
			}
			keys = append(keys, string(key))
			return nil
		}

		producer := mocks.NewSyncProducer(t, testConfig())
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(keyOf)
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(keyOf)

		s := newSink(producer, "large-transfers")
		defer s.Close()

		require.NoError(t, s.UpsertTransfer(t.Context(), record))
		require.NoError(t, s.UpsertTransfer(t.Context(), record))
		assert.Equal(t, []string{"0xabc", "0xabc"}, keys)
	})

	t.Run("broker failure is returned", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, testConfig())
		producer.ExpectSendMessageAndFail(sarama.ErrNotEnoughReplicas)

		s := newSink(producer, "large-transfers")
		defer s.Close()

		err := s.UpsertTransfer(t.Context(), record)

		assert.ErrorIs(t, err, sarama.ErrNotEnoughReplicas)
		assert.Contains(t, err.Error(), "0xabc")
	})

	t.Run("canceled context sends nothing", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, testConfig())

		s := newSink(producer, "large-transfers")
		defer s.Close()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		assert.ErrorIs(t, s.UpsertTransfer(ctx, record), context.Canceled)
	})
}

func TestNewSink(t *testing.T) {
	t.Run("requires brokers", func(t *testing.T) {
		s, err := NewSink(nil, "large-transfers")

		assert.ErrorIs(t, err, ErrNoBrokers)
		assert.Nil(t, s)
	})
}

func testConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	return cfg
}
