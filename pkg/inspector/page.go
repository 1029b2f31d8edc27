package inspector

import (
	"encoding/json"
	"html/template"
	"net/http"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://fonts.googleapis.com/icon?family=Material+Icons">
</head>
<body>
<div id="deuce-root" data-seq="{{.Seq}}">{{.HTML}}</div>
<script>
(function() {
    'use strict';

    var root = document.getElementById('deuce-root');
    var ws = null;
    var reconnectDelay = 1000;

    // Element-child indexes from root to el.
    function pathOf(el) {
        var path = [];
        while (el && el !== root) {
            var parent = el.parentElement;
            if (!parent) return null;
            path.unshift(Array.prototype.indexOf.call(parent.children, el));
            el = parent;
        }
        return el === root ? path : null;
    }

    function send(type, ev) {
        if (!ws || ws.readyState !== WebSocket.OPEN) return;
        var path = pathOf(ev.target);
        if (path === null) return;
        ws.send(JSON.stringify({
            type: 'event',
            event: type,
            path: path,
            key: ev.key || '',
            value: ev.target.value || ''
        }));
    }

    ['click', 'input', 'keydown', 'change'].forEach(function(type) {
        root.addEventListener(type, function(ev) { send(type, ev); });
    });

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.onopen = function() { reconnectDelay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.type === 'snapshot') {
                root.innerHTML = msg.html;
                root.dataset.seq = msg.seq;
            } else if (msg.type === 'error') {
                console.warn('[deuce]', msg.error);
            }
        };
        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, 30000);
                connect();
            }, reconnectDelay);
        };
    }
    connect();
})();
</script>
</body>
</html>
`))

type pageData struct {
	Title string
	Seq   uint64
	HTML  template.HTML
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page.Execute(w, pageData{
		Title: s.title,
		Seq:   snap.Seq,
		// Serialized by x/net/html, so already escaped.
		HTML: template.HTML(snap.HTML),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
