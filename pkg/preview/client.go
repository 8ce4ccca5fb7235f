package preview

// clientScript keeps the page in sync with the server and reports
// interactions. It is appended to the page body.
const clientScript = `
(function() {
    'use strict';

    var root = document.getElementById('toaster-root');
    var ws = null;
    var delay = 1000;

    function send(msg) {
        if (ws && ws.readyState === 1) {
            ws.send(JSON.stringify(msg));
        }
    }

    function toastOf(el) {
        var li = el.closest && el.closest('[data-toast-id]');
        return li ? li.getAttribute('data-toast-id') : '';
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.onopen = function() { delay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.html) { root.innerHTML = msg.html; }
        };
        ws.onclose = function() {
            setTimeout(function() {
                delay = Math.min(delay * 2, 30000);
                connect();
            }, delay);
        };
        ws.onerror = function() { ws.close(); };
    }

    root.addEventListener('mouseover', function() { send({type: 'hover', value: true}); });
    root.addEventListener('mouseleave', function() { send({type: 'hover', value: false}); });

    root.addEventListener('click', function(e) {
        var id = toastOf(e.target);
        var button = e.target.closest('button');
        if (!id || !button) { return; }
        if (button.hasAttribute('data-close-button')) { send({type: 'close', id: id}); }
        else if (button.hasAttribute('data-action')) { send({type: 'action', id: id}); }
        else if (button.hasAttribute('data-cancel')) { send({type: 'cancel', id: id}); }
    });

    ['down', 'move', 'up', 'cancel'].forEach(function(phase) {
        root.addEventListener('pointer' + phase, function(e) {
            var id = toastOf(e.target);
            if (!id) { return; }
            send({
                type: 'pointer', phase: phase, id: id,
                pointerId: e.pointerId, source: e.pointerType, y: e.clientY,
                onButton: !!e.target.closest('button')
            });
        });
    });

    document.addEventListener('keydown', function(e) {
        send({
            type: 'key', code: e.code, alt: e.altKey, ctrl: e.ctrlKey,
            meta: e.metaKey, shift: e.shiftKey, inToaster: root.contains(e.target)
        });
    });

    document.addEventListener('visibilitychange', function() {
        send({type: 'visibility', value: document.hidden});
    });

    connect();
})();
`
