package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home serves the API docs with a small form that posts to /analyze.
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>NLP API</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        pre { background: #f5f5f5; padding: 10px; border-radius: 5px; }
        .form { margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
        textarea { width: 100%; height: 100px; }
        button { margin-top: 10px; padding: 8px 15px; }
        #result { white-space: pre-wrap; }
    </style>
</head>
<body>
    <h1>Text Analysis API</h1>
    <h2>API Endpoints</h2>
    <h3>POST /analyze</h3>
    <p>Analyzes text for named entities and sentiment</p>
    <pre>
Request body:
{
    "text": "Your text to analyze"
}

Response:
{
    "text": "Your text to analyze",
    "ner": {
        "entities": [{"text": "...", "label": "...", "start": 0, "end": 0}],
        "entity_counts": {"LABEL": 1}
    },
    "sentiment": {
        "polarity": 0.0,
        "subjectivity": 0.0,
        "category": "neutral"
    }
}
    </pre>
    <h3>GET /health</h3>
    <p>Liveness check, returns <code>{"status": "ok"}</code></p>

    <div class="form">
        <h3>Test the API</h3>
        <textarea id="text" placeholder="Enter text to analyze..."></textarea>
        <br>
        <button onclick="analyzeText()">Analyze</button>
        <div id="result"></div>
    </div>

    <script>
    function analyzeText() {
        const text = document.getElementById('text').value;
        if (!text) {
            alert('Please enter some text to analyze');
            return;
        }

        fetch('/analyze', {
            method: 'POST',
            headers: {
                'Content-Type': 'application/json'
            },
            body: JSON.stringify({text})
        })
        .then(response => response.json())
        .then(data => {
            document.getElementById('result').textContent = JSON.stringify(data, null, 2);
        })
        .catch(error => {
            document.getElementById('result').textContent = 'Error: ' + error;
        });
    }
    </script>
</body>
</html>
`
