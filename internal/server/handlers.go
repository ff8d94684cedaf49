package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/calc-sim/fxpad/internal/dispatch"
	"github.com/calc-sim/fxpad/internal/keys"
	"github.com/calc-sim/fxpad/internal/version"
)

const keypadHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>CASIO fx-991ES PLUS Simulator</title>
    <style>
        body {
            font-family: 'Courier New', monospace;
            background: #f0f0f0;
            margin: 0;
            padding: 20px;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
        }
        .calculator {
            background: #2a2a2a;
            border-radius: 15px;
            padding: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.3);
            border: 3px solid #333;
            width: 320px;
        }
        .brand {
            text-align: center;
            color: #fff;
            font-weight: bold;
            font-size: 14px;
            margin-bottom: 4px;
        }
        .model {
            text-align: center;
            color: #aaa;
            font-size: 11px;
            margin-bottom: 12px;
        }
        .display {
            background: #c8d6b9;
            border: 2px inset #888;
            border-radius: 4px;
            padding: 10px;
            margin-bottom: 14px;
            min-height: 34px;
            font-size: 16px;
            color: #1a1a1a;
            text-align: right;
            overflow: hidden;
        }
        .status {
            font-size: 10px;
            text-align: left;
            color: #555;
            margin-bottom: 2px;
        }
        .status.connected { color: #2a7a2a; }
        .status.disconnected { color: #aa2222; }
        .row {
            display: grid;
            grid-template-columns: repeat(5, 1fr);
            gap: 6px;
            margin-bottom: 6px;
        }
        .key {
            border: none;
            border-radius: 5px;
            padding: 9px 0;
            font-size: 12px;
            font-weight: bold;
            cursor: pointer;
            color: #fff;
            background: #4a4a4a;
        }
        .key:active { transform: translateY(1px); }
        .key-number   { background: #5a5a5a; font-size: 15px; }
        .key-operator { background: #3d5a80; }
        .key-function { background: #4a4a4a; }
        .key-shift    { background: #c9a227; color: #222; }
        .key-alpha    { background: #a23b72; }
        .key-clear    { background: #a03030; }
        .key-special  { background: #3a6b4a; }
    </style>
</head>
<body>
    <div class="calculator">
        <div class="brand">CASIO</div>
        <div class="model">fx-991ES PLUS &middot; keypad bridge</div>
        <div class="display">
            <div id="status" class="status disconnected">offline</div>
            <span id="lastkey">&nbsp;</span>
        </div>
        <div class="row">
            <button class="key key-shift" onclick="sendKey('KEY_SHIFT')">SHIFT</button>
            <button class="key key-alpha" onclick="sendKey('KEY_ALPHA')">ALPHA</button>
            <button class="key key-special" onclick="sendKey('KEY_MODE')">MODE</button>
            <button class="key key-clear" onclick="sendKey('KEY_ON_AC')">ON</button>
            <button class="key key-clear" onclick="sendKey('KEY_CLEAR')">AC</button>
        </div>
        <div class="row">
            <button class="key key-function" onclick="sendKey('KEY_X_POW_Y')">x^y</button>
            <button class="key key-function" onclick="sendKey('KEY_LOG')">log</button>
            <button class="key key-function" onclick="sendKey('KEY_LN')">ln</button>
            <button class="key key-function" onclick="sendKey('KEY_PAREN_LEFT')">(</button>
            <button class="key key-function" onclick="sendKey('KEY_PAREN_RIGHT')">)</button>
        </div>
        <div class="row">
            <button class="key key-function" onclick="sendKey('KEY_SQRT')">&#8730;</button>
            <button class="key key-function" onclick="sendKey('KEY_SIN')">sin</button>
            <button class="key key-function" onclick="sendKey('KEY_COS')">cos</button>
            <button class="key key-function" onclick="sendKey('KEY_TAN')">tan</button>
            <button class="key key-function" onclick="sendKey('KEY_BACKSPACE')">DEL</button>
        </div>
        <div class="row">
            <button class="key key-function" onclick="sendKey('KEY_X_POW_MINUS1')">x&#8315;&#185;</button>
            <button class="key key-number" onclick="sendKey('KEY7')">7</button>
            <button class="key key-number" onclick="sendKey('KEY8')">8</button>
            <button class="key key-number" onclick="sendKey('KEY9')">9</button>
            <button class="key key-operator" onclick="sendKey('KEY_DIVIDE')">&divide;</button>
        </div>
        <div class="row">
            <button class="key key-function" onclick="sendKey('KEY_PERCENT')">%</button>
            <button class="key key-number" onclick="sendKey('KEY4')">4</button>
            <button class="key key-number" onclick="sendKey('KEY5')">5</button>
            <button class="key key-number" onclick="sendKey('KEY6')">6</button>
            <button class="key key-operator" onclick="sendKey('KEY_MULTIPLY')">&times;</button>
        </div>
        <div class="row">
            <button class="key key-function" onclick="sendKey('KEY_ENG')">ENG</button>
            <button class="key key-number" onclick="sendKey('KEY1')">1</button>
            <button class="key key-number" onclick="sendKey('KEY2')">2</button>
            <button class="key key-number" onclick="sendKey('KEY3')">3</button>
            <button class="key key-operator" onclick="sendKey('KEY_MINUS')">&minus;</button>
        </div>
        <div class="row">
            <button class="key key-function" onclick="sendKey('KEY_ANS')">Ans</button>
            <button class="key key-number" onclick="sendKey('KEY0')">0</button>
            <button class="key key-number" onclick="sendKey('KEY_DOT')">.</button>
            <button class="key key-function" onclick="sendKey('KEY_EXP')">EXP</button>
            <button class="key key-operator" onclick="sendKey('KEY_PLUS')">+</button>
        </div>
        <div class="row">
            <button class="key key-special" onclick="sendKey('KEY_MATRIX')">MAT</button>
            <button class="key key-special" onclick="sendKey('KEY_VECTOR')">VCT</button>
            <button class="key key-special" onclick="sendKey('KEY_SOLVE')">SOLVE</button>
            <button class="key key-operator" onclick="sendKey('KEY_EQUAL')" style="grid-column: span 2;">=</button>
        </div>
    </div>
    <script>
        const display = document.getElementById('lastkey');
        const status = document.getElementById('status');

        async function sendKey(name) {
            try {
                const resp = await fetch('/send_key', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({key: name})
                });
                const result = await resp.json();
                if (result.status === 'success') {
                    display.textContent = result.key + ' (' + result.value + ')';
                } else {
                    display.textContent = result.message || 'send failed';
                }
            } catch (e) {
                display.textContent = 'offline';
            }
        }

        function connect() {
            const ws = new WebSocket('ws://' + location.host + '/ws');
            ws.onopen = () => {
                status.textContent = 'linked';
                status.className = 'status connected';
            };
            ws.onmessage = (ev) => {
                const msg = JSON.parse(ev.data);
                if (msg.type === 'keypress') {
                    display.textContent = msg.key + ' (' + msg.code + ')';
                }
            };
            ws.onclose = () => {
                status.textContent = 'offline';
                status.className = 'status disconnected';
                setTimeout(connect, 2000);
            };
        }
        connect();
    </script>
</body>
</html>`

// sendKeyRequest is the inbound body of POST /send_key.
type sendKeyRequest struct {
	Key string `json:"key"`
}

func (s *KeypadServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(keypadHTML))
}

// handleSendKey accepts one key press and relays the dispatch outcome.
// Unknown keys come back as status=error without the pipe ever being opened.
func (s *KeypadServer) handleSendKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req sendKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dispatch.Result{
			Status:  dispatch.StatusError,
			Message: "malformed request body",
		})
		return
	}

	result := s.dispatcher.Press(r.Context(), req.Key)
	if result.OK() {
		s.broadcastKeyEvent(result)
	}

	// The press outcome travels in the body; the HTTP layer succeeded.
	writeJSON(w, http.StatusOK, result)
}

// handleKeys returns the full key registry so pages and tooling can
// introspect the enumeration.
func (s *KeypadServer) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": keys.Count(),
		"keys":  keys.All(),
	})
}

// handleHealth returns the server health status for health checks
func (s *KeypadServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.GetShortVersion(),
		"endpoint":  s.config.Transport.Fifo,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
